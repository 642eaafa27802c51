package postgres

import (
	"context"
	"flag"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	flag.Parse()

	if !testing.Short() {
		setupTestDatabase(context.Background())
	}

	code := m.Run()

	teardownTestDatabase()
	os.Exit(code)
}
