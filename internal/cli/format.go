package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rscole87/nucamp/internal/campsite"
	"github.com/rscole87/nucamp/internal/comment"
)

// printJSON marshals v as indented JSON and writes it to out.
func printJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printField prints an aligned "  Label:  value" line.
func printField(out io.Writer, label, value string) {
	fmt.Fprintf(out, "  %-10s%s\n", label+":", value)
}

// printCampsiteSummary prints a single campsite summary in text format.
func printCampsiteSummary(out io.Writer, c *campsite.Campsite) {
	fmt.Fprintf(out, "Campsite #%d\n", c.ID)
	printField(out, "Name", c.Name)
	printField(out, "Elevation", formatElevation(c.Elevation))
	if c.Featured {
		printField(out, "Featured", "yes")
	}
	printField(out, "Image", c.Image)
	if c.Description != "" {
		fmt.Fprintf(out, "\n  %s\n", c.Description)
	}
}

// printCampsiteTable prints a list of campsites as a formatted table.
func printCampsiteTable(out io.Writer, sites []*campsite.Campsite) error {
	if len(sites) == 0 {
		fmt.Fprintln(out, "No campsites found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tNAME\tELEVATION\tFEATURED"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t----\t---------\t--------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, c := range sites {
		featured := "-"
		if c.Featured {
			featured = "★"
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			c.ID, truncate(c.Name, 40), formatElevation(c.Elevation), featured); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(out, "\nTotal: %d campsites\n", len(sites))
	return nil
}

// printCommentList prints comments in text format, in the order given.
func printCommentList(out io.Writer, comments []*comment.Comment) {
	if len(comments) == 0 {
		fmt.Fprintln(out, "No comments.")
		return
	}

	for _, c := range comments {
		rating := ""
		if c.Rating != nil {
			rating = " " + formatRating(*c.Rating)
		}
		fmt.Fprintf(out, "%s%s\n  --%s %s\n\n", c.Text, rating, c.Author, comment.FormatDate(c.Date))
	}
}

// printCommentSingle prints a single comment in text format.
func printCommentSingle(out io.Writer, c *comment.Comment) {
	fmt.Fprintf(out, "Comment #%d added to campsite #%d.\n  %s\n  --%s %s\n",
		c.ID, c.CampsiteID, c.Text, c.Author, comment.FormatDate(c.Date))
}

// formatElevation formats feet with thousands separators.
func formatElevation(feet int64) string {
	sign := ""
	if feet < 0 {
		sign = "-"
		feet = -feet
	}
	s := fmt.Sprintf("%d", feet)

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	return sign + strings.Join(parts, ",") + " ft"
}

// formatRating returns a star representation of a rating (1-5).
func formatRating(rating int64) string {
	if rating < 1 {
		rating = 1
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", int(rating)) + strings.Repeat("☆", 5-int(rating))
}

// valueOr returns s, or fallback when s is empty.
func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:max(maxLen, 0)])
	}
	return string(r[:maxLen-3]) + "..."
}
