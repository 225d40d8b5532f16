package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Cyclone1070/spyglass-pinned/internal/server"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve pinned projects over HTTP",
		Long: `serve starts the HTTP API. GET /get/{username} returns the pinned
projects of a user as JSON. The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			logger := zerolog.Ctx(ctx)

			fetcher, release, err := newFetcher(ctx, cfg.Upstream)
			if err != nil {
				return err
			}
			defer release()

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.NewServer(*logger, cfg, fetcher)
			group, groupCtx := errgroup.WithContext(ctx)
			group.Go(srv.Start)
			group.Go(func() error {
				<-groupCtx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
				defer cancel()
				return srv.Stop(shutdownCtx)
			})
			return group.Wait()
		},
	}
}
