package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hackclub/imgopt/internal/config"
	"github.com/hackclub/imgopt/internal/gate"
	httphandler "github.com/hackclub/imgopt/internal/http"
	"github.com/hackclub/imgopt/internal/optimize"
	"github.com/hackclub/imgopt/internal/predict"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()
	logger.Info().Msg("starting imgopt server")

	compressionGate := gate.New(cfg.GateSlots, cfg.GateQueueCapacity)
	for _, c := range compressionGate.Collectors() {
		if err := prometheus.Register(c); err != nil {
			logger.Warn().Err(err).Msg("failed to register gate metric")
		}
	}

	router := optimize.NewRouter(cfg.ToolTimeout)
	estimator := predict.NewEstimator()

	server := httphandler.NewServer(cfg, logger, compressionGate, router, estimator)

	httpServer := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        server.Routes(),
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   90 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server starting")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited")
}
