package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"registrydash/internal/exporter"
	"registrydash/internal/validation"
)

func chartsCmd(opts *rootOptions) *cobra.Command {
	var (
		flags  criteriaFlags
		dir    string
		format string
	)

	cmd := &cobra.Command{
		Use:   "charts",
		Short: "Render every dashboard chart into a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := exporter.ParseFormat(format)
			if err != nil {
				return err
			}
			if err := validation.NewFileValidator(opts.logger).ValidateOutputDirectory(dir); err != nil {
				return err
			}
			svc, err := opts.loadService(cmd.Context())
			if err != nil {
				return err
			}

			paths, err := svc.RenderChartFiles(cmd.Context(), flags.criteria(cmd), dir, f)
			if err != nil {
				return criteriaFailure(err)
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&dir, "dir", "d", "charts", "output directory")
	cmd.Flags().StringVar(&format, "format", string(exporter.FormatPNG), "image format: png or svg")
	return cmd
}
