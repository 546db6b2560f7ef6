package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tbxark/formassist/server"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}

			janitorDone := a.sessions.StartJanitor(ctx, cfg.Session.SweepInterval, cfg.Session.IdleTTL,
				func(key string) {
					slog.Info("Session expired", "session_key", key)
				})

			err = server.New(a.service, a.registry).ListenAndServe(ctx, cfg.Addr())
			stop()
			<-janitorDone
			return err
		},
	}
}
