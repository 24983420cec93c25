package campsite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rscole87/nucamp/internal/db"
)

// Repository provides CRUD operations for campsites.
type Repository struct {
	db db.Querier
}

// NewRepository creates a campsite repository.
func NewRepository(q db.Querier) *Repository {
	return &Repository{db: q}
}

const selectColumns = `id, name, description, image, elevation, featured, created_at`

const upsertSQL = `INSERT INTO campsites (id, name, description, image, elevation, featured)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		description = excluded.description,
		image = excluded.image,
		elevation = excluded.elevation,
		featured = excluded.featured`

// Insert adds a new campsite and returns it with its generated ID.
func (r *Repository) Insert(c *Campsite) (*Campsite, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, fmt.Errorf("campsite name is required")
	}

	result, err := r.db.Exec(
		`INSERT INTO campsites (name, description, image, elevation, featured) VALUES (?, ?, ?, ?, ?)`,
		c.Name, c.Description, c.Image, c.Elevation, c.Featured,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting campsite: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	return r.GetByID(id)
}

// Upsert writes a campsite under its own ID, replacing any existing row.
func (r *Repository) Upsert(c *Campsite) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("campsite name is required")
	}
	if _, err := r.db.Exec(upsertSQL, c.ID, c.Name, c.Description, c.Image, c.Elevation, c.Featured); err != nil {
		return fmt.Errorf("upserting campsite %d: %w", c.ID, err)
	}
	return nil
}

// GetByID returns a campsite by its ID.
func (r *Repository) GetByID(id int64) (*Campsite, error) {
	query := fmt.Sprintf("SELECT %s FROM campsites WHERE id = ?", selectColumns)
	c, err := scanCampsite(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("campsite %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying campsite %d: %w", id, err)
	}
	return c, nil
}

// ListOptions controls filtering for List.
type ListOptions struct {
	FeaturedOnly bool
}

// List returns campsites in directory order.
func (r *Repository) List(opts ListOptions) (campsites []*Campsite, err error) {
	query := fmt.Sprintf("SELECT %s FROM campsites", selectColumns)
	if opts.FeaturedOnly {
		query += " WHERE featured = 1"
	}
	query += " ORDER BY id ASC"

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("listing campsites: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		c, err := scanCampsite(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning campsite: %w", err)
		}
		campsites = append(campsites, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating campsites: %w", err)
	}

	return campsites, nil
}

// Delete removes a campsite and, by cascade, its comments.
func (r *Repository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM campsites WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting campsite: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("campsite %d: %w", id, ErrNotFound)
	}

	return nil
}
