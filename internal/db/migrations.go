package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS campsites (
		id          INTEGER PRIMARY KEY,
		name        TEXT    NOT NULL,
		description TEXT    NOT NULL DEFAULT '',
		image       TEXT    NOT NULL DEFAULT '',
		elevation   INTEGER NOT NULL DEFAULT 0,
		featured    INTEGER NOT NULL DEFAULT 0,
		created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		campsite_id INTEGER NOT NULL REFERENCES campsites(id) ON DELETE CASCADE,
		rating      INTEGER CHECK (rating IS NULL OR (rating >= 1 AND rating <= 5)),
		text        TEXT    NOT NULL DEFAULT '',
		author      TEXT    NOT NULL,
		date        TEXT    NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_campsite ON comments(campsite_id)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}

	return nil
}
