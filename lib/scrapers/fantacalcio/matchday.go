package fantacalcio

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"fantassist-backend/lib/htmlutil"
	"fantassist-backend/lib/nullable"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
)

// nominal number of rounds in a season, the rendered page may carry
// fewer entries mid-season
const nominalGameDays = 38

// the team and score marker sets end with two synthetic entries for
// fixtures that were never played
const trailingPlaceholders = 2

// MatchDayRecord is one row of a player's per-match-day time series.
// Nullable fields are nil for days the player did not play or was not
// graded.
type MatchDayRecord struct {
	GameDay      int      `json:"game_day"`
	Grade        *float64 `json:"grade"`
	FantaGrade   *float64 `json:"fanta_grade"`
	Bonus        *float64 `json:"bonus"`
	Malus        *float64 `json:"malus"`
	HomeTeam     string   `json:"home_team"`
	GuestTeam    string   `json:"guest_team"`
	HomeScore    int      `json:"home_score"`
	GuestScore   int      `json:"guest_score"`
	SubInMinute  *float64 `json:"sub_in_minute"`
	SubOutMinute *float64 `json:"sub_out_minute"`
}

// MatchDayScraper extracts the per-match-day series off one player
// profile page. The page is fetched once, lazily, and owned exclusively
// by this instance.
type MatchDayScraper struct {
	Link PlayerLink
	page playerPage
}

func NewMatchDayScraper(client *Client, link PlayerLink) *MatchDayScraper {
	return &MatchDayScraper{
		Link: link,
		page: playerPage{client: client, url: link.Link},
	}
}

// Scrape pulls every field sequence off the page and reconciles them
// into records. The nominal 1..38 day index is truncated to the
// shortest extracted sequence so every emitted record is complete.
func (s *MatchDayScraper) Scrape(ctx context.Context) ([]MatchDayRecord, error) {
	ctx, span := tracer.Start(ctx, "matchday:Scrape")
	defer span.End()
	span.SetAttributes(attribute.String("player", s.Link.Name))

	doc, err := s.page.document(ctx)
	if err != nil {
		return nil, err
	}

	grades, err := attrDecimals(doc, "span.grade", "data-value", "grades")
	if err != nil {
		return nil, err
	}
	fantaGrades, err := attrDecimals(doc, "span.fanta-grade", "data-value", "fanta grades")
	if err != nil {
		return nil, err
	}
	bonuses, err := bonusMalusValues(doc, "data-primary-value", "bonuses")
	if err != nil {
		return nil, err
	}
	maluses, err := bonusMalusValues(doc, "data-secondary-value", "maluses")
	if err != nil {
		return nil, err
	}

	homeTeams := teamNames(doc)
	// TODO: guest teams mirror the span.team-home markers for now,
	// verify the span.team-away selector against live pages before
	// switching guest extraction over to it.
	guestTeams := teamNames(doc)

	homeScores, guestScores, err := matchScores(doc)
	if err != nil {
		return nil, err
	}

	subsIn, err := attrDecimals(doc, "span.sub-in", "data-minute", "substitution-in minutes")
	if err != nil {
		return nil, err
	}
	// TODO: same as guest teams, substitution-out minutes mirror the
	// span.sub-in markers until span.sub-out is confirmed.
	subsOut, err := attrDecimals(doc, "span.sub-in", "data-minute", "substitution-out minutes")
	if err != nil {
		return nil, err
	}

	days := nominalGameDays
	for _, length := range []int{
		len(grades), len(fantaGrades), len(bonuses), len(maluses),
		len(homeTeams), len(guestTeams), len(homeScores), len(guestScores),
		len(subsIn), len(subsOut),
	} {
		if length < days {
			days = length
		}
	}
	span.SetAttributes(attribute.Int("game_days", days))

	records := make([]MatchDayRecord, days)
	for i := 0; i < days; i++ {
		records[i] = MatchDayRecord{
			GameDay:      i + 1,
			Grade:        grades[i],
			FantaGrade:   fantaGrades[i],
			Bonus:        bonuses[i],
			Malus:        maluses[i],
			HomeTeam:     homeTeams[i],
			GuestTeam:    guestTeams[i],
			HomeScore:    homeScores[i],
			GuestScore:   guestScores[i],
			SubInMinute:  subsIn[i],
			SubOutMinute: subsOut[i],
		}
	}
	return records, nil
}

// attrDecimals reads one nullable decimal attribute off every marker
// matched by the selector.
func attrDecimals(doc *goquery.Document, selector, attr, step string) ([]*float64, error) {
	var values []*float64
	for _, n := range doc.Find(selector).Nodes {
		v, err := nullable.ParseDecimal(htmlutil.Attr(n, attr))
		if err != nil {
			return nil, structureError(step, err)
		}
		values = append(values, v)
	}
	return values, nil
}

// bonusMalusValues reads span values off the secondary chart axis. Only
// the second x-axis section carries bonus/malus data, fewer than two
// sections means the chart is structurally absent.
func bonusMalusValues(doc *goquery.Document, attr, step string) ([]*float64, error) {
	axes := doc.Find("div.x-axis")
	if len(axes.Nodes) < 2 {
		return nil, structureError(
			step,
			fmt.Errorf("expected at least two x-axis chart sections, found %d", len(axes.Nodes)),
		)
	}

	var values []*float64
	for _, n := range axes.Eq(1).Find("span").Nodes {
		v, err := nullable.ParseDecimal(htmlutil.Attr(n, attr))
		if err != nil {
			return nil, structureError(step, err)
		}
		values = append(values, v)
	}
	return values, nil
}

func teamNames(doc *goquery.Document) []string {
	var names []string
	for _, n := range doc.Find("span.team-home").Nodes {
		names = append(names, strings.TrimSpace(htmlutil.GetText(n)))
	}
	return dropTrailing(names, trailingPlaceholders)
}

func matchScores(doc *goquery.Document) (home []int, guest []int, err error) {
	var texts []string
	for _, n := range doc.Find("span.match-score").Nodes {
		texts = append(texts, strings.TrimSpace(htmlutil.GetText(n)))
	}
	texts = dropTrailing(texts, trailingPlaceholders)

	for _, text := range texts {
		homeStr, guestStr, found := strings.Cut(text, "-")
		if !found {
			return nil, nil, structureError(
				"match scores",
				fmt.Errorf("score %q is not of the form <int>-<int>", text),
			)
		}
		homeScore, herr := strconv.Atoi(strings.TrimSpace(homeStr))
		guestScore, gerr := strconv.Atoi(strings.TrimSpace(guestStr))
		if herr != nil || gerr != nil {
			return nil, nil, structureError(
				"match scores",
				fmt.Errorf("score %q is not of the form <int>-<int>", text),
			)
		}
		home = append(home, homeScore)
		guest = append(guest, guestScore)
	}
	return home, guest, nil
}

func dropTrailing[T any](values []T, n int) []T {
	if len(values) <= n {
		return nil
	}
	return values[:len(values)-n]
}
