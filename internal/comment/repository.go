package comment

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rscole87/nucamp/internal/db"
)

// Repository provides CRUD operations for comments.
type Repository struct {
	db  db.Querier
	now func() time.Time
}

// NewRepository creates a comment repository.
func NewRepository(q db.Querier) *Repository {
	return &Repository{db: q, now: time.Now}
}

const selectColumns = `id, campsite_id, rating, text, author, date`

// Add creates a new comment on a campsite dated now.
func (r *Repository) Add(campsiteID int64, rating *int, author, text string) (*Comment, error) {
	if strings.TrimSpace(author) == "" {
		return nil, fmt.Errorf("comment author is required")
	}
	return r.Insert(&Comment{
		CampsiteID: campsiteID,
		Rating:     toInt64(rating),
		Author:     author,
		Text:       text,
		Date:       Timestamp(r.now()),
	})
}

// Insert stores a comment as given, keeping its ID when non-zero.
func (r *Repository) Insert(c *Comment) (*Comment, error) {
	var (
		result sql.Result
		err    error
	)
	if c.ID != 0 {
		result, err = r.db.Exec(
			"INSERT OR REPLACE INTO comments (id, campsite_id, rating, text, author, date) VALUES (?, ?, ?, ?, ?, ?)",
			c.ID, c.CampsiteID, c.Rating, c.Text, c.Author, c.Date,
		)
	} else {
		result, err = r.db.Exec(
			"INSERT INTO comments (campsite_id, rating, text, author, date) VALUES (?, ?, ?, ?, ?)",
			c.CampsiteID, c.Rating, c.Text, c.Author, c.Date,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("inserting comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	saved, err := scanComment(r.db.QueryRow(
		fmt.Sprintf("SELECT %s FROM comments WHERE id = ?", selectColumns), id,
	))
	if err != nil {
		return nil, fmt.Errorf("reading back comment: %w", err)
	}

	return saved, nil
}

// ListByCampsiteID returns all comments for a campsite in insertion order.
func (r *Repository) ListByCampsiteID(campsiteID int64) (comments []*Comment, err error) {
	rows, err := r.db.Query(
		fmt.Sprintf("SELECT %s FROM comments WHERE campsite_id = ? ORDER BY id ASC", selectColumns),
		campsiteID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	comments = []*Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comments: %w", err)
	}

	return comments, nil
}

// Delete removes a comment by ID.
func (r *Repository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM comments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("comment %d not found", id)
	}

	return nil
}

func scanComment(row interface{ Scan(...interface{}) error }) (*Comment, error) {
	var c Comment
	var rating sql.NullInt64
	if err := row.Scan(&c.ID, &c.CampsiteID, &rating, &c.Text, &c.Author, &c.Date); err != nil {
		return nil, err
	}
	if rating.Valid {
		c.Rating = &rating.Int64
	}
	return &c, nil
}

func toInt64(n *int) *int64 {
	if n == nil {
		return nil
	}
	v := int64(*n)
	return &v
}
