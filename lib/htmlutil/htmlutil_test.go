package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestSegmentedText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<a class="player-name">
			<span>Lookman</span>
			<span> A </span>
		</a>
	`))
	require.NoError(t, err)

	node := doc.Find("a.player-name").Nodes[0]
	require.Equal(t, "Lookman\nA", SegmentedText(node))
}

func TestGetText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div><b>3</b>-<i>2</i></div>`,
	))
	require.NoError(t, err)

	node := doc.Find("div").Nodes[0]
	require.Equal(t, "3-2", GetText(node))
}

func TestAttr(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<span class="grade" data-value="7,5"></span>`,
	))
	require.NoError(t, err)

	node := doc.Find("span.grade").Nodes[0]
	require.Equal(t, "7,5", Attr(node, "data-value"))
	require.Equal(t, "", Attr(node, "data-missing"))
}
