package cli

import (
	"os/signal"
	"syscall"

	"solomon-validator/internal/app"

	"github.com/spf13/cobra"
)

func newServeCmd(a *session) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the validation HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port != "" {
				a.cfg.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return app.Serve(ctx, a.cfg, a.logger)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (default from PORT)")
	return cmd
}
