// Package main is the entry point for the load-planning HTTP API.
//
// Usage:
//
//	go run ./cmd/loadplan-api
//
// Environment Variables:
//
//	LPS_ENVIRONMENT     - Deployment environment (development, staging, production)
//	LPS_SERVER_PORT     - HTTP server port (default: 8080, PORT also honoured)
//	LPS_HISTORY_DRIVER  - memory, sqlite or postgres
//	LPS_HISTORY_DSN     - database DSN (DATABASE_URL also honoured)
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/hapkiduki/loadplan-go/internal/application/service"
	"github.com/hapkiduki/loadplan-go/internal/infrastructure/config"
	"github.com/hapkiduki/loadplan-go/internal/infrastructure/logging"
	"github.com/hapkiduki/loadplan-go/internal/infrastructure/persistance"
	"github.com/hapkiduki/loadplan-go/internal/infrastructure/telemetry"
	"github.com/hapkiduki/loadplan-go/internal/interfaces/http/router"
	"github.com/hapkiduki/loadplan-go/pkg/logger"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	startedAt := time.Now()

	cfg := config.MustLoad()

	log := logger.MustNew(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: cfg.App.Environment == "development",
	})
	defer log.Sync()

	log.Info("Starting load planning API",
		"version", version,
		"environment", cfg.App.Environment,
		"history_driver", cfg.History.Driver,
		"history_enabled", cfg.History.Enabled,
	)

	// Create context that listens for shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeHistory, err := persistance.OpenHistory(ctx, cfg.History)
	if err != nil {
		log.Fatal("Failed to open calculation history", "error", err)
	}
	defer func() {
		if err := closeHistory(); err != nil {
			log.Error("Failed to close calculation history", "error", err)
		}
	}()

	opts := []service.Option{service.WithDefaults(cfg.Engine.ServiceDefaults())}
	if cfg.Telemetry.MetricsEnabled {
		m := telemetry.NewMetrics(otel.Meter(cfg.Telemetry.ServiceName))
		m.OnError(func(name string, err error) {
			log.Warn("Failed to create instrument", "metric", name, "error", err)
		})
		opts = append(opts, service.WithMetrics(m))
	}
	if cfg.Telemetry.TracingEnabled {
		opts = append(opts, service.WithTracer(telemetry.NewTracer(otel.Tracer(cfg.Telemetry.ServiceName))))
	}
	calc := service.NewCalculatorService(repo, logging.NewAdapter(log.Named("calculator")), opts...)

	handler := router.New(router.Deps{
		Server:     cfg.Server,
		RateLimit:  cfg.RateLimit,
		Version:    version,
		StartedAt:  startedAt,
		Logger:     logging.NewAdapter(log.Named("http")),
		Calculator: calc,
	})

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()

	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}
	log.Info("Server shutdown complete")
}
