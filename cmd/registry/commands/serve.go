package commands

import (
	"github.com/spf13/cobra"

	"registrydash/internal/app"
)

func serveCmd(opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				opts.cfg.Server.Port = port
			}
			application, err := app.NewApplication(cmd.Context(), opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			return application.Run(cmd.Context())
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides server.port)")
	return cmd
}
