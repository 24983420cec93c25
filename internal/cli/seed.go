package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rscole87/nucamp/internal/seed"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the bundled campsites",
		Long:  "Load the bundled campsite directory and comments into the database. Safe to run more than once.",
		Args:  cobra.NoArgs,
		RunE:  runSeed,
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	stats, err := seed.Defaults(cmd.Context(), database)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, stats)
	}
	_, err = fmt.Fprintf(out, "Loaded %d campsites and %d comments.\n", stats.Campsites, stats.Comments)
	return err
}
