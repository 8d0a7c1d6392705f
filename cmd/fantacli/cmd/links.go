package cmd

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(linksCmd)
}

var linksCmd = &cobra.Command{
	Use:   "links <season>",
	Short: "Prints every player listed for a season.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		links, err := client.PlayerLinks(cmd.Context(), args[0])
		if err != nil {
			fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Player", "Link"})

		for _, l := range links {
			t.AppendRow(table.Row{l.Name, l.Link})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
