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
	rootCmd.AddCommand(rostersCmd)
	rootCmd.AddCommand(rosterCmd)
}

var rostersCmd = &cobra.Command{
	Use:   "rosters",
	Short: "Prints the saved rosters.",
	Run: func(cmd *cobra.Command, args []string) {
		service, err := roster.NewService(rostersDir)
		if err != nil {
			fatal(err)
		}
		names, err := service.List()
		if err != nil {
			fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Roster"})

		for _, name := range names {
			t.AppendRow(table.Row{name})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

var rosterCmd = &cobra.Command{
	Use:   "roster <name> <season>",
	Short: "Resolves a saved roster against the stored players of a season.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		name, season := args[0], args[1]

		service, err := roster.NewService(rostersDir)
		if err != nil {
			fatal(err)
		}
		r, err := service.Load(name)
		if err != nil {
			fatal(err)
		}

		store := openStore()
		stored, err := store.Pull(cmd.Context(), season)
		if err != nil {
			fatal(err)
		}
		var links []fantacalcio.PlayerLink
		byName := make(map[string]fantacalcio.PlayerSeasonStats)
		for _, p := range stored {
			links = append(links, p.Link)
			byName[p.Link.Name] = p
		}

		resolved := roster.ResolvePlayers(r.Players(), links)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Name", "Matched", "Correlation", "Role", "Team", "Avg grade"})

		for _, match := range resolved {
			player := byName[match.Link.Name]
			t.AppendRow(table.Row{
				match.Name,
				match.Link.Name,
				fmt.Sprintf("%.2f", match.Correlation),
				player.Summary.Role,
				player.Summary.Team,
				formatNullable(player.Summary.AvgGrade),
			})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
