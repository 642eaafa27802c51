package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/SpinWheel_Go/internal/bootstrap"
	"github.com/osse101/SpinWheel_Go/internal/config"
	"github.com/osse101/SpinWheel_Go/internal/database"
	"github.com/osse101/SpinWheel_Go/internal/database/postgres"
	"github.com/osse101/SpinWheel_Go/internal/event"
	"github.com/osse101/SpinWheel_Go/internal/logger"
	"github.com/osse101/SpinWheel_Go/internal/seed"
	"github.com/osse101/SpinWheel_Go/internal/validation"
)

func main() {
	reset := flag.Bool("reset", false, "drop and recreate the database before migrating")
	seedDir := flag.String("seed", "", "directory of wheel YAML files to create after migrating")
	flag.Parse()

	if err := run(*reset, *seedDir); err != nil {
		slog.Error("Setup failed", "error", err)
		os.Exit(1)
	}
}

func run(reset bool, seedDir string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, "spin-wheel-setup", cfg.Version, cfg.Environment, false))

	ctx := context.Background()

	if err := ensureDatabase(ctx, cfg, reset); err != nil {
		return err
	}

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdle, cfg.DBMaxConnLife)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", cfg.DBName, err)
	}
	defer pool.Close()

	version, err := database.Migrate(ctx, pool)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("Migrations complete", "version", version)

	if seedDir == "" {
		return nil
	}

	wheels, err := seed.NewLoader(validation.NewSchemaValidator(), seed.DefaultSchemaPath).LoadDir(seedDir)
	if err != nil {
		return err
	}

	svc, err := bootstrap.InitializeWheelService(cfg, postgres.NewWheelRepository(pool), event.NewMemoryBus())
	if err != nil {
		return err
	}

	result, err := seed.Apply(ctx, svc, wheels)
	if err != nil {
		return err
	}
	slog.Info("Seeding complete", "created", len(result.Created), "skipped", len(result.Skipped))
	return nil
}

// ensureDatabase creates the configured database if it is missing, dropping it first when reset is set
func ensureDatabase(ctx context.Context, cfg *config.Config, reset bool) error {
	adminConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort)

	conn, err := pgx.Connect(ctx, adminConnString)
	if err != nil {
		return fmt.Errorf("unable to connect to postgres database: %w", err)
	}
	defer conn.Close(ctx)

	ident := pgx.Identifier{cfg.DBName}.Sanitize()

	if reset {
		slog.Warn("Dropping database", "database", cfg.DBName)
		if _, err := conn.Exec(ctx, `
			SELECT pg_terminate_backend(pid)
			FROM pg_stat_activity
			WHERE datname = $1 AND pid <> pg_backend_pid()`, cfg.DBName); err != nil {
			slog.Warn("Failed to terminate connections", "error", err)
		}
		if _, err := conn.Exec(ctx, "DROP DATABASE IF EXISTS "+ident); err != nil {
			return fmt.Errorf("failed to drop database: %w", err)
		}
	}

	var exists bool
	if err := conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DBName).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}
	if exists {
		slog.Info("Database already exists", "database", cfg.DBName)
		return nil
	}

	if _, err := conn.Exec(ctx, "CREATE DATABASE "+ident); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	slog.Info("Database created", "database", cfg.DBName)
	return nil
}
