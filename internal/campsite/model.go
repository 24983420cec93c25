// Package campsite provides the campsite domain model and data access.
package campsite

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a campsite does not exist.
var ErrNotFound = errors.New("campsite not found")

// Campsite is a single directory entry.
type Campsite struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Elevation   int64     `json:"elevation"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
}

// scanCampsite scans a campsite from a database row.
func scanCampsite(row interface{ Scan(...interface{}) error }) (*Campsite, error) {
	var c Campsite
	if err := row.Scan(
		&c.ID, &c.Name, &c.Description, &c.Image,
		&c.Elevation, &c.Featured, &c.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}
