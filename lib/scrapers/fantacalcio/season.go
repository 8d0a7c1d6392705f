package fantacalcio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel/attribute"
)

// PlayerSeasonStats bundles everything scraped for one player.
type PlayerSeasonStats struct {
	Link      PlayerLink
	MatchDays []MatchDayRecord
	Summary   PlayerSeasonSummary
}

type WalkSeasonOptions struct {
	// upper bound of the randomized delay between consecutive
	// players, to stay polite to the source site. defaults to 3s,
	// negative disables the delay.
	MaxDelay time.Duration
	// called after each successfully scraped player
	OnPlayer func(PlayerSeasonStats)
}

// WalkSeason scrapes the whole season: the player listing, then match
// days and summary per player. A failing player is recorded and skipped
// so one broken profile page never aborts the season; the joined
// per-player errors are returned alongside whatever was scraped.
func (c *Client) WalkSeason(ctx context.Context, season string, opts WalkSeasonOptions) ([]PlayerSeasonStats, error) {
	ctx, span := tracer.Start(ctx, "client:WalkSeason")
	defer span.End()
	span.SetAttributes(attribute.String("season", season))

	maxDelay := opts.MaxDelay
	if maxDelay == 0 {
		maxDelay = time.Second * 3
	}

	links, err := c.PlayerLinks(ctx, season)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "walking season", "season", season, "players", len(links))

	var stats []PlayerSeasonStats
	var errList []error
	for i, link := range links {
		if i > 0 && maxDelay > 0 {
			if err := politeDelay(ctx, maxDelay); err != nil {
				return stats, errors.Join(append(errList, err)...)
			}
		}

		// match-day and summary failures are isolated from each
		// other, both run against their own fetched document
		matchDays, mdErr := NewMatchDayScraper(c, link).Scrape(ctx)
		summary, sumErr := NewSummaryScraper(c, link).Scrape(ctx)
		if mdErr != nil || sumErr != nil {
			slog.WarnContext(ctx, "skipping player",
				"player", link.Name, "match_days_err", mdErr, "summary_err", sumErr)
			if mdErr != nil {
				errList = append(errList, fmt.Errorf("%s: %w", link.Name, mdErr))
			}
			if sumErr != nil {
				errList = append(errList, fmt.Errorf("%s: %w", link.Name, sumErr))
			}
			continue
		}

		player := PlayerSeasonStats{
			Link:      link,
			MatchDays: matchDays,
			Summary:   summary,
		}
		stats = append(stats, player)
		if opts.OnPlayer != nil {
			opts.OnPlayer(player)
		}
	}

	return stats, errors.Join(errList...)
}

func politeDelay(ctx context.Context, max time.Duration) error {
	// a bound that rounds down to zero milliseconds means no delay
	upper := int(max.Milliseconds())
	if upper < 1 {
		return nil
	}
	ms, err := random.IntRange(0, upper)
	if err != nil {
		return err
	}
	select {
	case <-time.After(time.Duration(ms) * time.Millisecond):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
