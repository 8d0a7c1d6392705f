package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"fantassist-backend/lib/scrapers/fantacalcio"
	"fantassist-backend/lib/statstore"

	"github.com/spf13/cobra"
)

var scrapeMaxDelay time.Duration

func init() {
	scrapeCmd.Flags().DurationVar(
		&scrapeMaxDelay, "max-delay", time.Second*3,
		"Upper bound of the randomized delay between players.",
	)
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape <season>",
	Short: "Scrapes a whole season into the stats database.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		season := args[0]
		store := openStore()

		stats, walkErr := client.WalkSeason(cmd.Context(), season, fantacalcio.WalkSeasonOptions{
			MaxDelay: scrapeMaxDelay,
			OnPlayer: func(p fantacalcio.PlayerSeasonStats) {
				slog.Info("scraped player", "player", p.Link.Name, "match_days", len(p.MatchDays))
			},
		})

		// store whatever was scraped even when some players failed
		if len(stats) > 0 {
			err := store.Push(cmd.Context(), statstore.PushRequest{
				Season:  season,
				Players: stats,
			})
			if err != nil {
				fatal(err)
			}
		}
		fmt.Printf("stored %d players for %s\n", len(stats), season)

		if walkErr != nil {
			fmt.Fprintln(os.Stderr, walkErr.Error())
			os.Exit(1)
		}
	},
}
