// The portal binary serves the browser-facing dispatch portal: session
// cookie management, login/logout, and the guarded order board, all backed
// by the dispatch API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/roadrescue/dispatch-system/internal/infrastructure/config"
	"github.com/roadrescue/dispatch-system/internal/portal"
	"github.com/roadrescue/dispatch-system/internal/portal/client"
	"github.com/roadrescue/dispatch-system/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend := client.New(client.Config{
		BaseURL: cfg.Portal.BaseURL,
		Logger:  log,
	})

	e := portal.NewRouter(backend, log)

	go func() {
		log.Info().Str("port", cfg.Portal.Port).Str("api", cfg.Portal.BaseURL).Msg("portal listening")
		if err := e.Start(":" + cfg.Portal.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
