package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/BlueprintCost_Go/internal/bootstrap"
	"github.com/osse101/BlueprintCost_Go/internal/config"
	"github.com/osse101/BlueprintCost_Go/internal/server"
)

// @title Blueprint Cost API
// @version 1.0
// @description Unit costs and build times for manufacturing and reaction blueprints.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	// Environment drift is reported but not fatal; Load already enforced what is required
	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		slog.Warn("Environment check failed", "error", err)
	}
	for _, w := range warnings {
		slog.Warn("Environment warning", "warning", w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storage, err := bootstrap.InitializeStorage(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	svc, err := bootstrap.BuildService(cfg, storage.Repo)
	if err != nil {
		slog.Error("Failed to build costing service", "error", err)
		_ = storage.Close()
		os.Exit(1)
	}

	// A failed first load leaves the server up but not ready; POST /admin/reload retries
	if err := svc.Reload(ctx); err != nil {
		slog.Error("Initial dataset load failed", "error", err)
	}

	refresher := bootstrap.StartRefresher(svc, cfg.RefreshInterval)

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		Service:        svc,
		DB:             storage.Pinger(),
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err := <-serverErr:
		slog.Error("Server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:    srv,
		Refresher: refresher,
		Storage:   storage,
	})
}
