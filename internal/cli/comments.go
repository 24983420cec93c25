package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCommentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comments <id>",
		Short: "List comments for a campsite",
		Long:  "List all comments for a campsite, oldest first.",
		Args:  cobra.ExactArgs(1),
		RunE:  runComments,
	}
}

func runComments(cmd *cobra.Command, args []string) error {
	id, err := parseCampsiteID(args[0])
	if err != nil {
		return err
	}

	comments, err := newAPIClient().ListComments(id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, comments)
	}

	fmt.Fprintf(out, "Comments for campsite #%d:\n\n", id)
	printCommentList(out, comments)
	return nil
}
