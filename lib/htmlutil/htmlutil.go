// Package htmlutil holds the small document-tree helpers shared by the
// fantacalcio scrapers.
package htmlutil

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// SegmentedText joins the trimmed text segments of a node with newlines,
// skipping segments that are pure whitespace. Player-name cells render
// the display name and secondary labels as separate inline elements, so
// the segments have to stay distinguishable.
func SegmentedText(node *html.Node) string {
	var segments []string
	collectSegments(node, &segments)
	return strings.Join(segments, "\n")
}

func collectSegments(node *html.Node, segments *[]string) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		trimmed := strings.TrimSpace(node.Data)
		if trimmed != "" {
			*segments = append(*segments, trimmed)
		}
		return
	}
	child := node.FirstChild
	for child != nil {
		collectSegments(child, segments)
		child = child.NextSibling
	}
}

// Attr returns the value of the named attribute, or "" when absent.
func Attr(node *html.Node, key string) string {
	for _, a := range node.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
