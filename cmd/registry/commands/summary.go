package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"registrydash/pkg/contracts/domain"
)

func summaryCmd(opts *rootOptions) *cobra.Command {
	var flags criteriaFlags

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the headline metrics of the filtered registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.loadService(cmd.Context())
			if err != nil {
				return err
			}
			d, err := svc.Evaluate(cmd.Context(), flags.criteria(cmd), domain.Page{Limit: 1})
			if err != nil {
				return criteriaFailure(err)
			}

			out := cmd.OutOrStdout()
			if d.Empty {
				fmt.Fprintln(out, d.Message)
				return nil
			}
			m := d.Metrics
			fmt.Fprintf(out, "Total de compañías: %d (de %d, %+d)\n", m.TotalCount, m.TotalRaw, m.CountDelta)
			fmt.Fprintf(out, "Capital suscrito total: %s\n", m.CapitalTotalDisplay)
			fmt.Fprintf(out, "Capital promedio: %s\n", m.CapitalAverageDisplay)
			fmt.Fprintf(out, "Provincias: %d\n", m.DistinctProvinces)
			if d.Message != "" {
				fmt.Fprintln(out, d.Message)
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
