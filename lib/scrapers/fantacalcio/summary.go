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

// role title used by the site for goalkeepers
const goalkeeperRole = "Portiere"

// OutfieldStats are the season aggregates of attackers, midfielders and
// defenders.
type OutfieldStats struct {
	GradedMatches   int      `json:"graded_matches"`
	Goals           int      `json:"goals"`
	Assists         int      `json:"assists"`
	HomeGameGoals   int      `json:"home_game_goals"`
	AwayGameGoals   int      `json:"away_game_goals"`
	PenaltiesScored int      `json:"penalties_scored"`
	PenaltiesShot   int      `json:"penalties_shot"`
	PenaltiesRatio  *float64 `json:"penalties_ratio"`
	Autogoals       int      `json:"autogoals"`
	YellowCards     int      `json:"yellow_cards"`
	RedCards        int      `json:"red_cards"`
}

// GoalkeeperStats are the season aggregates of goalkeepers, read off
// the same table cells and pills as OutfieldStats but with conceded
// goals instead of scored ones and saved penalties instead of a
// scored/shot ratio.
type GoalkeeperStats struct {
	GradedMatches         int `json:"graded_matches"`
	GoalsConceded         int `json:"goals_conceded"`
	Assists               int `json:"assists"`
	HomeGameGoalsConceded int `json:"home_game_goals_conceded"`
	AwayGameGoalsConceded int `json:"away_game_goals_conceded"`
	PenaltiesSaved        int `json:"penalties_saved"`
	Autogoals             int `json:"autogoals"`
	YellowCards           int `json:"yellow_cards"`
	RedCards              int `json:"red_cards"`
}

// PlayerSeasonSummary carries the season aggregates common to every
// player plus exactly one role-specific payload, discriminated by Role.
type PlayerSeasonSummary struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	MantraRole  string `json:"mantra_role"`
	Team        string `json:"team"`
	Description string `json:"description"`

	AvgGrade         *float64 `json:"avg_grade"`
	AvgFantaGrade    *float64 `json:"avg_fanta_grade"`
	MedianGrade      *float64 `json:"median_grade"`
	MedianFantaGrade *float64 `json:"median_fanta_grade"`

	Outfield   *OutfieldStats   `json:"outfield,omitempty"`
	Goalkeeper *GoalkeeperStats `json:"goalkeeper,omitempty"`
}

func (s PlayerSeasonSummary) IsGoalkeeper() bool {
	return strings.EqualFold(s.Role, goalkeeperRole)
}

// SummaryScraper extracts season aggregates off one player profile
// page. It holds its own lazily-fetched document, independent from any
// MatchDayScraper for the same player, so a failure in one never blocks
// the other.
type SummaryScraper struct {
	Link PlayerLink
	page playerPage
}

func NewSummaryScraper(client *Client, link PlayerLink) *SummaryScraper {
	return &SummaryScraper{
		Link: link,
		page: playerPage{client: client, url: link.Link},
	}
}

// Outfield returns the outfield-shaped summary. Requesting it for a
// goalkeeper fails with a RoleMismatchError.
func (s *SummaryScraper) Outfield(ctx context.Context) (PlayerSeasonSummary, error) {
	ctx, span := tracer.Start(ctx, "summary:Outfield")
	defer span.End()
	span.SetAttributes(attribute.String("player", s.Link.Name))

	summary, err := s.common(ctx)
	if err != nil {
		return PlayerSeasonSummary{}, err
	}
	if summary.IsGoalkeeper() {
		return PlayerSeasonSummary{}, &RoleMismatchError{Role: summary.Role, Requested: "outfield"}
	}

	doc, err := s.page.document(ctx)
	if err != nil {
		return PlayerSeasonSummary{}, err
	}

	cells, err := valueCells(doc)
	if err != nil {
		return PlayerSeasonSummary{}, err
	}
	pills, err := pillTexts(doc)
	if err != nil {
		return PlayerSeasonSummary{}, err
	}

	stats := &OutfieldStats{
		GradedMatches: cells[0],
		Goals:         cells[1],
		Assists:       cells[2],
	}
	stats.HomeGameGoals, stats.AwayGameGoals, err = splitPill(pills[0], "home/away goal split")
	if err != nil {
		return PlayerSeasonSummary{}, err
	}
	stats.YellowCards, err = intPill(pills[1], "yellow cards")
	if err != nil {
		return PlayerSeasonSummary{}, err
	}
	stats.PenaltiesScored, stats.PenaltiesShot, err = splitPill(pills[2], "penalties scored/shot")
	if err != nil {
		return PlayerSeasonSummary{}, err
	}
	stats.RedCards, err = intPill(pills[3], "red cards")
	if err != nil {
		return PlayerSeasonSummary{}, err
	}
	stats.Autogoals, err = intPill(pills[4], "autogoals")
	if err != nil {
		return PlayerSeasonSummary{}, err
	}
	stats.PenaltiesRatio = nullable.SafeDivide(
		float64(stats.PenaltiesScored),
		float64(stats.PenaltiesShot),
	)

	summary.Outfield = stats
	return summary, nil
}

// Goalkeeper returns the goalkeeper-shaped summary. Requesting it for
// an outfield player fails with a RoleMismatchError.
func (s *SummaryScraper) Goalkeeper(ctx context.Context) (PlayerSeasonSummary, error) {
	ctx, span := tracer.Start(ctx, "summary:Goalkeeper")
	defer span.End()
	span.SetAttributes(attribute.String("player", s.Link.Name))

	summary, err := s.common(ctx)
	if err != nil {
		return PlayerSeasonSummary{}, err
	}
	if !summary.IsGoalkeeper() {
		return PlayerSeasonSummary{}, &RoleMismatchError{Role: summary.Role, Requested: "goalkeeper"}
	}

	doc, err := s.page.document(ctx)
	if err != nil {
		return PlayerSeasonSummary{}, err
	}

	cells, err := valueCells(doc)
	if err != nil {
		return PlayerSeasonSummary{}, err
	}
	pills, err := pillTexts(doc)
	if err != nil {
		return PlayerSeasonSummary{}, err
	}

	stats := &GoalkeeperStats{
		GradedMatches: cells[0],
		GoalsConceded: cells[1],
		Assists:       cells[2],
	}
	stats.HomeGameGoalsConceded, stats.AwayGameGoalsConceded, err = splitPill(pills[0], "home/away goals-conceded split")
	if err != nil {
		return PlayerSeasonSummary{}, err
	}
	stats.YellowCards, err = intPill(pills[1], "yellow cards")
	if err != nil {
		return PlayerSeasonSummary{}, err
	}
	stats.PenaltiesSaved, err = intPill(pills[2], "penalties saved")
	if err != nil {
		return PlayerSeasonSummary{}, err
	}
	stats.RedCards, err = intPill(pills[3], "red cards")
	if err != nil {
		return PlayerSeasonSummary{}, err
	}
	stats.Autogoals, err = intPill(pills[4], "autogoals")
	if err != nil {
		return PlayerSeasonSummary{}, err
	}

	summary.Goalkeeper = stats
	return summary, nil
}

// Scrape reads the role off the page and returns whichever summary
// shape matches it.
func (s *SummaryScraper) Scrape(ctx context.Context) (PlayerSeasonSummary, error) {
	summary, err := s.common(ctx)
	if err != nil {
		return PlayerSeasonSummary{}, err
	}
	if summary.IsGoalkeeper() {
		return s.Goalkeeper(ctx)
	}
	return s.Outfield(ctx)
}

func (s *SummaryScraper) common(ctx context.Context) (PlayerSeasonSummary, error) {
	doc, err := s.page.document(ctx)
	if err != nil {
		return PlayerSeasonSummary{}, err
	}

	avgBadge := doc.Find("span.badge.badge-primary.avg")
	if len(avgBadge.Nodes) == 0 {
		return PlayerSeasonSummary{}, structureError("average grade badge", nil)
	}
	avgGrade, err := nullable.ParseDecimal(strings.TrimSpace(avgBadge.First().Text()))
	if err != nil {
		return PlayerSeasonSummary{}, structureError("average grade badge", err)
	}
	// TODO: the average fanta grade reads the same badge as the
	// average grade, check the span.badge.badge-info.avg selector on
	// live pages before splitting them.
	avgFantaGrade, err := nullable.ParseDecimal(strings.TrimSpace(avgBadge.First().Text()))
	if err != nil {
		return PlayerSeasonSummary{}, structureError("average fanta grade badge", err)
	}

	grades, err := attrDecimals(doc, "span.grade", "data-value", "grades")
	if err != nil {
		return PlayerSeasonSummary{}, err
	}
	fantaGrades, err := attrDecimals(doc, "span.fanta-grade", "data-value", "fanta grades")
	if err != nil {
		return PlayerSeasonSummary{}, err
	}

	roleBadge := doc.Find("span.role").Not(".role-mantra")
	if len(roleBadge.Nodes) == 0 {
		return PlayerSeasonSummary{}, structureError("role badge", nil)
	}
	role := htmlutil.Attr(roleBadge.Nodes[0], "title")
	if role == "" {
		return PlayerSeasonSummary{}, structureError("role badge", nil)
	}

	mantraBadge := doc.Find("span.role.role-mantra")
	if len(mantraBadge.Nodes) == 0 {
		return PlayerSeasonSummary{}, structureError("mantra role badge", nil)
	}
	mantraRole := htmlutil.Attr(mantraBadge.Nodes[0], "title")
	if mantraRole == "" {
		return PlayerSeasonSummary{}, structureError("mantra role badge", nil)
	}

	teamLink := doc.Find("a.team-name.team-link")
	if len(teamLink.Nodes) == 0 {
		return PlayerSeasonSummary{}, structureError("team link", nil)
	}
	teamMeta := teamLink.First().Find("meta")
	if len(teamMeta.Nodes) == 0 {
		return PlayerSeasonSummary{}, structureError("team link metadata", nil)
	}
	team := htmlutil.Attr(teamMeta.Nodes[0], "content")

	descriptionBlock := doc.Find("div.description")
	if len(descriptionBlock.Nodes) == 0 {
		return PlayerSeasonSummary{}, structureError("description", nil)
	}
	description := strings.TrimSpace(descriptionBlock.First().Text())

	return PlayerSeasonSummary{
		Name:             s.Link.Name,
		Role:             role,
		MantraRole:       mantraRole,
		Team:             team,
		Description:      description,
		AvgGrade:         avgGrade,
		AvgFantaGrade:    avgFantaGrade,
		MedianGrade:      nullable.SafeMedian(grades),
		MedianFantaGrade: nullable.SafeMedian(fantaGrades),
	}, nil
}

// valueCells reads the three positional summary-table cells:
// graded matches, goals (conceded for goalkeepers), assists.
func valueCells(doc *goquery.Document) ([3]int, error) {
	var cells [3]int

	nodes := doc.Find("td.value").Nodes
	if len(nodes) < 3 {
		return cells, structureError(
			"summary table cells",
			fmt.Errorf("expected 3 value cells, found %d", len(nodes)),
		)
	}
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(htmlutil.GetText(nodes[i])))
		if err != nil {
			return cells, structureError("summary table cells", err)
		}
		cells[i] = v
	}
	return cells, nil
}

// pillTexts reads the five positional aggregate pills: home/away
// split, yellow cards, penalties, red cards, autogoals.
func pillTexts(doc *goquery.Document) ([5]string, error) {
	var pills [5]string

	nodes := doc.Find("span.pill").Nodes
	if len(nodes) < 5 {
		return pills, structureError(
			"aggregate pills",
			fmt.Errorf("expected 5 pills, found %d", len(nodes)),
		)
	}
	for i := 0; i < 5; i++ {
		pills[i] = strings.TrimSpace(htmlutil.GetText(nodes[i]))
	}
	return pills, nil
}

func splitPill(text, step string) (int, int, error) {
	leftStr, rightStr, found := strings.Cut(text, "/")
	if !found {
		return 0, 0, structureError(step, fmt.Errorf("pill %q is not of the form <int>/<int>", text))
	}
	left, lerr := strconv.Atoi(strings.TrimSpace(leftStr))
	right, rerr := strconv.Atoi(strings.TrimSpace(rightStr))
	if lerr != nil || rerr != nil {
		return 0, 0, structureError(step, fmt.Errorf("pill %q is not of the form <int>/<int>", text))
	}
	return left, right, nil
}

func intPill(text, step string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, structureError(step, fmt.Errorf("pill %q is not an integer", text))
	}
	return v, nil
}
