package fantacalcio

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"fantassist-backend/lib/htmlutil"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// PlayerLink identifies a player's profile page for one season.
type PlayerLink struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

var seasonRegex = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// ValidateSeason checks a season token like "2024-25" before any
// network access happens.
func ValidateSeason(season string) error {
	groups := seasonRegex.FindStringSubmatch(season)
	if groups == nil {
		return &ValidationError{
			Reason: fmt.Sprintf("season %q does not match the YYYY-YY format", season),
		}
	}

	start, _ := strconv.Atoi(groups[1])
	end, _ := strconv.Atoi(groups[2])
	if (start+1)%100 != end {
		return &ValidationError{
			Reason: fmt.Sprintf("season %q does not span consecutive years", season),
		}
	}
	return nil
}

// PlayerLinks scrapes the listing page of a season and returns every
// player's display name and profile link, in document order. A
// well-formed listing with no players yields an empty slice, a missing
// nesting level in the listing markup is a PageStructureError.
func (c *Client) PlayerLinks(ctx context.Context, season string) ([]PlayerLink, error) {
	ctx, span := tracer.Start(ctx, "client:PlayerLinks")
	defer span.End()

	if err := ValidateSeason(season); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s%s/%s/", c.BaseUrl, listingPath, season)
	doc, err := c.fetchDocument(ctx, url)
	if err != nil {
		return nil, err
	}

	container := doc.Find("div.container")
	if len(container.Nodes) == 0 {
		return nil, structureError("listing container", nil)
	}
	overflow := container.First().Find("div.table-overflow")
	if len(overflow.Nodes) == 0 {
		return nil, structureError("listing table wrapper", nil)
	}
	table := overflow.First().Find("table")
	if len(table.Nodes) == 0 {
		return nil, structureError("listing table", nil)
	}

	links := []PlayerLink{}
	for _, n := range table.First().Find("a.player-name.player-link").Nodes {
		name := strings.TrimSpace(htmlutil.SegmentedText(n))
		href := NormalizeSeasonLink(htmlutil.Attr(n, "href"), season)

		links = append(links, PlayerLink{
			Name: name,
			Link: href,
		})
		span.AddEvent("player", trace.WithAttributes(
			attribute.String("name", name),
			attribute.String("link", href),
		))
	}

	return links, nil
}

// NormalizeSeasonLink makes sure a profile href addresses the requested
// season. Cached or season-less hrefs get the season token appended,
// hrefs that already carry it are returned unchanged.
func NormalizeSeasonLink(href, season string) string {
	trimmed := strings.TrimRight(href, "/")
	if strings.HasSuffix(trimmed, "/"+season) {
		return href
	}
	return trimmed + "/" + season
}
