package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spektr-org/launchdash/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web dashboard",
		Long: `Serves the dashboard page and its JSON API:

  GET /                                   dashboard page
  GET /api/controls                       site dropdown and payload slider
  GET /api/charts/outcome?site=           outcome distribution
  GET /api/charts/payload?site=&low=&high= payload vs outcome
  GET /healthz                            liveness

Stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(a.table,
				server.WithLogger(a.logger),
				server.WithSliderStep(a.cfg.Slider.Step),
			)
			a.logger.Info("starting dashboard server", zap.String("listen", a.cfg.Listen))
			return srv.Run(ctx, a.cfg.Listen)
		},
	}
	cmd.Flags().String("listen", "", "listen address (default :8050)")
	cmd.Flags().Float64("slider-step", 0, "payload slider step in kg (default 1000)")
	return cmd
}
