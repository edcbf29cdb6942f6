package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/region-sentiment/internal/adapter/httpadapter"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the query API with health, readiness, and metrics endpoints",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := httpadapter.NewServer(a.cfg.HTTPAddr, a.logger)

	// Start HTTP server. /readyz reports not ready until the service is attached.
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	svc, err := a.service(ctx, a.cfg.PublishEnabled)
	if err != nil {
		a.shutdown(srv)
		return err
	}
	srv.Attach(svc)
	a.logger.Info("service ready", "regions", len(svc.Regions()))

	select {
	case <-ctx.Done():
	case err = <-errCh:
		a.logger.Error("http server error", "error", err)
	}
	a.logger.Info("shutting down")
	a.shutdown(srv)
	a.logger.Info("shutdown complete")
	return err
}

func (a *app) shutdown(srv *httpadapter.Server) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", "error", err)
	}
	if err := a.close(); err != nil {
		a.logger.Error("close error", "error", err)
	}
}
