// Package statstore persists scraped season statistics in sqlite (or a
// remote libsql database) so repeated reads never hit the source site.
package statstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"fantassist-backend/lib/scrapers/fantacalcio"
	"fantassist-backend/lib/timezone"

	_ "embed"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

type PushRequest struct {
	Season string
	// defaults to the current time in the league's timezone
	Time    time.Time
	Players []fantacalcio.PlayerSeasonStats
}

// Push upserts the given players for a season in one transaction. A
// player already stored for that season is overwritten, players absent
// from the request are left untouched so partial season walks can be
// pushed incrementally.
func (s Store) Push(ctx context.Context, req PushRequest) error {
	scrapedAt := req.Time
	if scrapedAt.IsZero() {
		scrapedAt = timezone.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, player := range req.Players {
		summary, err := json.Marshal(player.Summary)
		if err != nil {
			return err
		}
		matchDays, err := json.Marshal(player.MatchDays)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(
			ctx,
			`INSERT OR REPLACE INTO player_stats
				(season, name, link, role, team, summary, match_days, scraped_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			req.Season,
			player.Link.Name,
			player.Link.Link,
			player.Summary.Role,
			player.Summary.Team,
			string(summary),
			string(matchDays),
			scrapedAt.Unix(),
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Pull returns every stored player of a season, ordered by name. Rows
// whose payload no longer unmarshals are skipped with a warning rather
// than failing the whole read.
func (s Store) Pull(ctx context.Context, season string) ([]fantacalcio.PlayerSeasonStats, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT name, link, summary, match_days FROM player_stats
			WHERE season = ? ORDER BY name`,
		season,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []fantacalcio.PlayerSeasonStats
	for rows.Next() {
		var name, link, summaryJson, matchDaysJson string
		err := rows.Scan(&name, &link, &summaryJson, &matchDaysJson)
		if err != nil {
			return nil, err
		}

		player := fantacalcio.PlayerSeasonStats{
			Link: fantacalcio.PlayerLink{Name: name, Link: link},
		}
		err = json.Unmarshal([]byte(summaryJson), &player.Summary)
		if err != nil {
			slog.WarnContext(ctx, "failed to unmarshal stored summary", "player", name, "err", err)
			continue
		}
		err = json.Unmarshal([]byte(matchDaysJson), &player.MatchDays)
		if err != nil {
			slog.WarnContext(ctx, "failed to unmarshal stored match days", "player", name, "err", err)
			continue
		}
		players = append(players, player)
	}
	return players, rows.Err()
}

// Player returns one stored player, reporting whether it was found.
func (s Store) Player(ctx context.Context, season, name string) (fantacalcio.PlayerSeasonStats, bool, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT link, summary, match_days FROM player_stats
			WHERE season = ? AND name = ?`,
		season, name,
	)

	var link, summaryJson, matchDaysJson string
	err := row.Scan(&link, &summaryJson, &matchDaysJson)
	if err == sql.ErrNoRows {
		return fantacalcio.PlayerSeasonStats{}, false, nil
	}
	if err != nil {
		return fantacalcio.PlayerSeasonStats{}, false, err
	}

	player := fantacalcio.PlayerSeasonStats{
		Link: fantacalcio.PlayerLink{Name: name, Link: link},
	}
	err = json.Unmarshal([]byte(summaryJson), &player.Summary)
	if err != nil {
		return fantacalcio.PlayerSeasonStats{}, false, err
	}
	err = json.Unmarshal([]byte(matchDaysJson), &player.MatchDays)
	if err != nil {
		return fantacalcio.PlayerSeasonStats{}, false, err
	}
	return player, true, nil
}

// Seasons lists every season with at least one stored player.
func (s Store) Seasons(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT DISTINCT season FROM player_stats ORDER BY season`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seasons []string
	for rows.Next() {
		var season string
		if err := rows.Scan(&season); err != nil {
			return nil, err
		}
		seasons = append(seasons, season)
	}
	return seasons, rows.Err()
}
