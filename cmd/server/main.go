package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/light-bringer/fnb-pricing-service/internal/config"
	"github.com/light-bringer/fnb-pricing-service/internal/platform/logger"
	"github.com/light-bringer/fnb-pricing-service/internal/platform/tracing"
	"github.com/light-bringer/fnb-pricing-service/internal/services"
)

var configPath = flag.String("config", os.Getenv("CONFIG_FILE"), "Optional YAML config file")

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to run server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	if cfg.Log.Mode == "production" || cfg.Log.Mode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info("starting pricing service",
		"spanner_database", cfg.Spanner.Database,
		"http_port", cfg.HTTP.Port,
		"demand_model", cfg.DemandModel.Target,
		"scoring_concurrency", cfg.Scoring.Concurrency,
	)

	// 2. Tracing
	shutdownTracing, err := tracing.Setup(ctx, log, cfg.ServiceName, cfg.Tracing.Exporter)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("tracer shutdown failed", "error", err)
		}
	}()

	// 3. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           serviceOpts.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 4. Start HTTP server in background
	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 5. Graceful shutdown handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutting down gracefully", "signal", sig.String())
	case err := <-errCh:
		return fmt.Errorf("HTTP server error: %w", err)
	}

	// In-flight commits either finish or their context is cancelled before Apply.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Scoring.Timeout+5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	return nil
}
