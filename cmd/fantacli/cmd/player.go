package cmd

import (
	"fmt"
	"os"

	"fantassist-backend/lib/scrapers/fantacalcio"
	"fantassist-backend/services/roster"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(playerCmd)
}

var playerCmd = &cobra.Command{
	Use:   "player <season> <name>",
	Short: "Prints the stored season of one player, fuzzy-matching the name.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		season, name := args[0], args[1]
		store := openStore()

		player, found, err := store.Player(cmd.Context(), season, name)
		if err != nil {
			fatal(err)
		}
		if !found {
			stored, err := store.Pull(cmd.Context(), season)
			if err != nil {
				fatal(err)
			}
			var links []fantacalcio.PlayerLink
			for _, p := range stored {
				links = append(links, p.Link)
			}

			resolved := roster.ResolvePlayers([]string{name}, links)
			if len(resolved) == 0 {
				fatal(fmt.Errorf("no player matching %q stored for %s", name, season))
			}
			fmt.Printf("no exact match for %q, showing %q (correlation %.2f)\n",
				name, resolved[0].Link.Name, resolved[0].Correlation)

			player, found, err = store.Player(cmd.Context(), season, resolved[0].Link.Name)
			if err != nil {
				fatal(err)
			}
			if !found {
				fatal(fmt.Errorf("no player matching %q stored for %s", name, season))
			}
		}

		summary := player.Summary
		fmt.Printf("%s (%s / %s) - %s\n", player.Link.Name, summary.Role, summary.MantraRole, summary.Team)
		if summary.Description != "" {
			fmt.Println(summary.Description)
		}
		fmt.Printf("avg grade %s, avg fanta grade %s, median grade %s, median fanta grade %s\n",
			formatNullable(summary.AvgGrade),
			formatNullable(summary.AvgFantaGrade),
			formatNullable(summary.MedianGrade),
			formatNullable(summary.MedianFantaGrade))

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Day", "Grade", "Fanta", "Bonus", "Malus", "Match", "Score", "In", "Out"})

		for _, day := range player.MatchDays {
			t.AppendRow(table.Row{
				day.GameDay,
				formatNullable(day.Grade),
				formatNullable(day.FantaGrade),
				formatNullable(day.Bonus),
				formatNullable(day.Malus),
				fmt.Sprintf("%s - %s", day.HomeTeam, day.GuestTeam),
				fmt.Sprintf("%d-%d", day.HomeScore, day.GuestScore),
				formatNullable(day.SubInMinute),
				formatNullable(day.SubOutMinute),
			})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
