package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ukaji3/mesacheck-go/pkg/mesacheck"
	"github.com/ukaji3/mesacheck-go/pkg/mesacheck/web"
)

func newServeCmd(a *app) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the confirmation page over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("listen") {
				a.cfg.Listen = listen
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			session := mesacheck.NewSession(a.options(), a.logger)
			srv := web.NewServer(session, web.Options{
				MaxUploadBytes: a.cfg.MaxUploadBytes(),
				OutputName:     a.cfg.OutputName,
				Logger:         a.logger,
			})
			return srv.ListenAndServe(ctx, a.cfg.Listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (default: 127.0.0.1:8080)")
	return cmd
}
