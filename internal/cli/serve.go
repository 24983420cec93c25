package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rscole87/nucamp/internal/logging"
	"github.com/rscole87/nucamp/internal/seed"
	"github.com/rscole87/nucamp/internal/web"
)

func newServeCmd() *cobra.Command {
	var (
		port      int
		baseURL   string
		staticDir string
		withSeed  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI",
		Long:  "Start an HTTP server for the campsite web UI and JSON API.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if baseURL == "" {
				baseURL = getBaseURL()
			}
			return runServe(cmd.Context(), port, web.Config{BaseURL: baseURL, StaticDir: staticDir}, withSeed)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "port to listen on")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "prefix for campsite image paths (default: /static/)")
	cmd.Flags().StringVar(&staticDir, "static", "", "directory served under /static/")
	cmd.Flags().BoolVar(&withSeed, "seed", false, "load the bundled campsites in the background")

	return cmd
}

func runServe(ctx context.Context, port int, cfg web.Config, withSeed bool) error {
	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	srv, err := web.NewServer(database, cfg)
	if err != nil {
		return err
	}

	if withSeed {
		srv.Load(ctx, func(ctx context.Context) error {
			stats, err := seed.Defaults(ctx, database)
			if err != nil {
				return err
			}
			slog.Info("seeded campsites", "campsites", stats.Campsites, "comments", stats.Comments)
			return nil
		})
	}

	return web.ListenAndServe(port, logging.RequestLogger(srv))
}
