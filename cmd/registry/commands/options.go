package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func optionsCmd(opts *rootOptions) *cobra.Command {
	var regions []string

	cmd := &cobra.Command{
		Use:   "options",
		Short: "Print the selectable filter values as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.loadService(cmd.Context())
			if err != nil {
				return err
			}
			options, err := svc.Options(cmd.Context(), regions)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(options)
		},
	}
	cmd.Flags().StringSliceVar(&regions, "region", nil, "narrow provinces to these regions (repeatable)")
	return cmd
}
