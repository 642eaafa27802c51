package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/SpinWheel_Go/internal/bootstrap"
	"github.com/osse101/SpinWheel_Go/internal/config"
	"github.com/osse101/SpinWheel_Go/internal/database"
	"github.com/osse101/SpinWheel_Go/internal/database/postgres"
	"github.com/osse101/SpinWheel_Go/internal/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Spin wheel service failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load reads .env, so it runs before the schema check
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	for _, w := range warnings {
		slog.Warn("Environment warning", "detail", w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdle, cfg.DBMaxConnLife)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	applied, err := database.Migrate(ctx, pool)
	if err != nil {
		pool.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("Database migrations applied", "version", applied)

	bus, hub, err := bootstrap.InitializeEventSystem()
	if err != nil {
		pool.Close()
		return err
	}

	wheelService, err := bootstrap.InitializeWheelService(cfg, postgres.NewWheelRepository(pool), bus)
	if err != nil {
		hub.Stop()
		pool.Close()
		return err
	}

	workerPool, sched := bootstrap.InitializeBackgroundJobs(wheelService)

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, pool, wheelService, hub)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			slog.Error("HTTP server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), bootstrap.ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:     srv,
		Scheduler:  sched,
		WorkerPool: workerPool,
		Hub:        hub,
		DBPool:     pool,
	})
	return nil
}
