package cmd

import (
	"fmt"
	"os"
	"strconv"

	"fantassist-backend/lib/scrapers/fantacalcio"
	"fantassist-backend/lib/sqliteutil"
	"fantassist-backend/lib/statstore"

	"github.com/spf13/cobra"
)

var BaseUrl string

var client *fantacalcio.Client
var databasePath string
var rostersDir string

var rootCmd = &cobra.Command{
	Use:   "fantacli",
	Short: "fantacli scrapes and inspects fantacalcio player statistics.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databasePath, "db", "fantassist.db", "Path to the sqlite stats database.")
	rootCmd.PersistentFlags().StringVar(&rostersDir, "rosters", "data/my_teams", "Directory holding saved roster files.")
}

func Execute() {
	client = fantacalcio.NewClient(fantacalcio.ClientOptions{BaseUrl: BaseUrl})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openStore() statstore.Store {
	db, err := sqliteutil.OpenDB(statstore.Schema, databasePath)
	if err != nil {
		fatal(err)
	}
	return statstore.NewStore(db)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}

func formatNullable(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
