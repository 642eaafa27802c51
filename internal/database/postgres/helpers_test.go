package postgres

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/SpinWheel_Go/internal/database"
)

var (
	testPool          *pgxpool.Pool
	testTerminate     func()
	migrationsApplied bool
	migrationsMux     sync.Mutex
)

// setupTestDatabase starts a disposable Postgres container.
// It leaves testPool nil when Docker is unavailable so tests can skip.
func setupTestDatabase(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupTestDatabase: %v\n", r)
		}
	}()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return
	}
	testTerminate = func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		return
	}

	pool, err := database.NewPool(ctx, connStr, 10, time.Minute, 5*time.Minute)
	if err != nil {
		fmt.Printf("WARNING: Failed to connect to test database: %v\n", err)
		return
	}
	testPool = pool
}

// teardownTestDatabase closes the pool and stops the container
func teardownTestDatabase() {
	if testPool != nil {
		testPool.Close()
	}
	if testTerminate != nil {
		testTerminate()
	}
}

// requireTestPool skips the test when no database is available and applies migrations once
func requireTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testPool == nil {
		t.Skip("Skipping integration test: database not available")
	}

	migrationsMux.Lock()
	defer migrationsMux.Unlock()
	if !migrationsApplied {
		if _, err := database.Migrate(context.Background(), testPool); err != nil {
			t.Fatalf("failed to apply migrations: %v", err)
		}
		migrationsApplied = true
	}
	return testPool
}
