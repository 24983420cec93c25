package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show campsite details",
		Long:  "Show full details for a campsite, including all comments.",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseCampsiteID(args[0])
	if err != nil {
		return err
	}

	resp, err := newAPIClient().GetCampsite(id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, resp)
	}

	printCampsiteSummary(out, resp.Campsite)
	fmt.Fprintln(out)
	if len(resp.Comments) > 0 {
		fmt.Fprintf(out, "Comments (%d):\n", len(resp.Comments))
	}
	printCommentList(out, resp.Comments)

	return nil
}
