package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rscole87/nucamp/internal/form"
)

func newCommentCmd() *cobra.Command {
	var author, rating string

	cmd := &cobra.Command{
		Use:   `comment <id> "text"`,
		Short: "Add a comment to a campsite",
		Long:  "Add a comment to a campsite. The author is required and must be 2 to 15 characters.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseCampsiteID(args[0])
			if err != nil {
				return err
			}

			d := form.Draft{
				Rating: strings.TrimSpace(rating),
				Author: strings.TrimSpace(author),
				Text:   strings.TrimSpace(strings.Join(args[1:], " ")),
			}
			if res := form.Validate(d); !res.Valid() {
				return validationError(res)
			}

			comm, err := newAPIClient().AddComment(id, d.Rating, d.Author, d.Text)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if isJSON() {
				return printJSON(out, comm)
			}
			printCommentSingle(out, comm)
			return nil
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "your name (2-15 characters)")
	cmd.Flags().StringVar(&rating, "rating", "", "rating from 1 to 5")

	return cmd
}

// validationError joins per-field messages, e.g. "invalid comment: author: Required".
func validationError(res form.Result) error {
	fields := res.Map()
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(fields[name], ", "))
	}
	return fmt.Errorf("invalid comment: %s", strings.Join(parts, "; "))
}

func parseCampsiteID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid campsite ID: %s", s)
	}
	return id, nil
}
