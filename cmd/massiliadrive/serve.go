package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/massiliadrive/backend/internal/handler"
	"github.com/massiliadrive/backend/internal/router"
	"github.com/massiliadrive/backend/internal/server"
	"github.com/massiliadrive/backend/internal/service"
	"github.com/spf13/cobra"
)

// DefaultContextTimeout bounds the graceful shutdown.
const DefaultContextTimeout = 30

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, loggerService, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer loggerService.Shutdown()

		srv, err := server.New(cfg, &log, loggerService)
		if err != nil {
			log.Error().Err(err).Msg("failed to initialize server")
			return err
		}

		services := service.NewServices(srv)
		handlers := handler.NewHandlers(srv, services)
		r := router.NewRouter(srv, handlers)

		srv.SetupHTTPServer(r)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				log.Error().Err(err).Msg("server stopped")
				return err
			}
		case <-ctx.Done():
		}

		log.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server forced to shutdown")
			return err
		}

		log.Info().Msg("server exited properly")
		return nil
	},
}
