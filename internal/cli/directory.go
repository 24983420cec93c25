package cli

import (
	"github.com/spf13/cobra"

	"github.com/rscole87/nucamp/internal/client"
)

func newDirectoryCmd() *cobra.Command {
	var featured bool

	cmd := &cobra.Command{
		Use:     "directory",
		Aliases: []string{"list"},
		Short:   "List all campsites",
		Long:    "List the campsite directory, optionally only featured campsites.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sites, err := newAPIClient().ListCampsites(client.ListOptions{FeaturedOnly: featured})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if isJSON() {
				return printJSON(out, sites)
			}
			return printCampsiteTable(out, sites)
		},
	}

	cmd.Flags().BoolVar(&featured, "featured", false, "only featured campsites")

	return cmd
}
