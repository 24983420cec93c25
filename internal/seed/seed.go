// Package seed loads the bundled campsite directory into the database.
package seed

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/rscole87/nucamp/internal/campsite"
	"github.com/rscole87/nucamp/internal/comment"
)

//go:embed data/*.json
var dataFS embed.FS

// Stats reports how many records a load wrote.
type Stats struct {
	Campsites int `json:"campsites"`
	Comments  int `json:"comments"`
}

// Defaults loads the bundled fixture.
func Defaults(ctx context.Context, db *sql.DB) (Stats, error) {
	campsites, err := dataFS.Open("data/campsites.json")
	if err != nil {
		return Stats{}, fmt.Errorf("opening campsite fixture: %w", err)
	}
	defer closeQuietly(campsites)

	comments, err := dataFS.Open("data/comments.json")
	if err != nil {
		return Stats{}, fmt.Errorf("opening comment fixture: %w", err)
	}
	defer closeQuietly(comments)

	return Load(ctx, db, campsites, comments)
}

// Load upserts campsites and then comments decoded from JSON arrays, in one
// transaction. Loading the same data twice leaves the database unchanged.
func Load(ctx context.Context, db *sql.DB, campsites, comments io.Reader) (stats Stats, err error) {
	var sites []*campsite.Campsite
	if err := json.NewDecoder(campsites).Decode(&sites); err != nil {
		return stats, fmt.Errorf("decoding campsites: %w", err)
	}
	var notes []*comment.Comment
	if err := json.NewDecoder(comments).Decode(&notes); err != nil {
		return stats, fmt.Errorf("decoding comments: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	// Campsites only become visible together with their fixture comments,
	// so a comment posted meanwhile cannot take a fixture id.
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil && !errors.Is(rerr, sql.ErrTxDone) {
				slog.Warn("rolling back seed", "error", rerr)
			}
		}
	}()

	siteRepo := campsite.NewRepository(tx)
	for _, c := range sites {
		if err := ctx.Err(); err != nil {
			return Stats{}, err
		}
		if err := siteRepo.Upsert(c); err != nil {
			return Stats{}, err
		}
		stats.Campsites++
	}

	commentRepo := comment.NewRepository(tx)
	for _, c := range notes {
		if err := ctx.Err(); err != nil {
			return Stats{}, err
		}
		// Fixture ids start at 0; the table's ids start at 1.
		c.ID++
		if _, err := commentRepo.Insert(c); err != nil {
			return Stats{}, fmt.Errorf("seeding comment %d: %w", c.ID-1, err)
		}
		stats.Comments++
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("committing seed: %w", err)
	}

	slog.Debug("seeded database", "campsites", stats.Campsites, "comments", stats.Comments)
	return stats, nil
}

func closeQuietly(c io.Closer) {
	if err := c.Close(); err != nil {
		slog.Warn("closing fixture", "error", err)
	}
}
