// Package cli defines the cobra command tree for nucamp.
package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rscole87/nucamp/internal/client"
	"github.com/rscole87/nucamp/internal/db"
	"github.com/rscole87/nucamp/internal/logging"
)

var (
	flagFormat string
	flagDB     string
	flagDev    bool
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "nucamp",
		Short:         "Browse campsites and leave comments",
		Long:          "A campsite directory. Serve the web UI, browse campsites and their comments, and submit new comments from the CLI.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadDotEnv(".env"); err != nil {
				return err
			}
			logging.Setup(flagDev)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default: ~/.nucamp/campsites.db)")
	root.PersistentFlags().BoolVar(&flagDev, "dev", false, "human-readable debug logging")

	root.AddCommand(
		newServeCmd(),
		newSeedCmd(),
		newDirectoryCmd(),
		newShowCmd(),
		newCommentCmd(),
		newCommentsCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// loadDotEnv loads environment variables from path. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// openDB opens the SQLite database using the --db flag, NUCAMP_DB or the default path.
func openDB() (*sql.DB, error) {
	path, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return db.Open(path)
}

// newAPIClient creates an HTTP client for the nucamp API.
func newAPIClient() *client.Client {
	return client.New(getServerURL())
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}
