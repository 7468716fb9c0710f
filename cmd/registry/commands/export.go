package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"registrydash/internal/config"
	"registrydash/internal/exporter"
	"registrydash/internal/validation"
)

func exportCmd(opts *rootOptions) *cobra.Command {
	var (
		flags criteriaFlags
		out   string
		bom   bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered registry as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out != "-" {
				v := validation.NewFileValidator(opts.logger)
				if err := v.ValidateExtension(out, ".csv"); err != nil {
					return err
				}
				if err := v.ValidateOutputDirectory(filepath.Dir(out)); err != nil {
					return err
				}
			}
			svc, err := opts.loadService(cmd.Context())
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			n, err := svc.ExportCSV(cmd.Context(), flags.criteria(cmd), &buf, exporter.WriteOptions{BOMPrefix: bom})
			if err != nil {
				return criteriaFailure(err)
			}

			if out == "-" {
				_, err := buf.WriteTo(cmd.OutOrStdout())
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d records to %s\n", n, out)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", config.DefaultExportFileName, "output file, - for stdout")
	cmd.Flags().BoolVar(&bom, "bom", false, "prefix the file with a UTF-8 byte order mark")
	return cmd
}
