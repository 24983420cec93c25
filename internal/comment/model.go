// Package comment provides the comment domain model and data access.
package comment

import (
	"fmt"
	"strconv"
	"time"
)

// Comment is a visitor review of a campsite.
type Comment struct {
	ID         int64  `json:"id"`
	CampsiteID int64  `json:"campsiteId"`
	Rating     *int64 `json:"rating"`
	Text       string `json:"text"`
	Author     string `json:"author"`
	Date       string `json:"date"`
}

// dateLayout matches the ISO-8601 form browsers emit for Date.toISOString.
const dateLayout = "2006-01-02T15:04:05.000Z07:00"

// displayLayout renders dates like "Jun 05, 2020".
const displayLayout = "Jan 02, 2006"

// Timestamp formats t the way comment dates are stored.
func Timestamp(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// parseLayouts are tried in order by ParseDate.
var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses a stored comment date.
func ParseDate(s string) (time.Time, error) {
	var err error
	for _, layout := range parseLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing comment date %q: %w", s, err)
}

// FormatDate renders a stored date as abbreviated month, day and year.
// Unparseable input is returned unchanged.
func FormatDate(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return s
	}
	return t.UTC().Format(displayLayout)
}

// ParseRating converts a form rating value into a stored rating.
// Empty and "blank" mean no rating.
func ParseRating(s string) (*int, error) {
	if s == "" || s == "blank" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 5 {
		return nil, fmt.Errorf("rating must be 1-5, got %q", s)
	}
	return &n, nil
}
