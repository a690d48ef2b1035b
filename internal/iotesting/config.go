// Package iotesting provides shared utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"testing"
	"time"

	"github.com/vmikk/adegenet/internal/iodb"
	"github.com/vmikk/adegenet/internal/ioconfig"
	"github.com/vmikk/adegenet/pkg/config"
	"github.com/vmikk/adegenet/pkg/db"
)

// TestDatabaseName is the database name used for all integration tests.
// Tests never run against the database configured for real exports.
const TestDatabaseName = "adegenet_test"

// DatabaseConfig returns PostgreSQL settings for integration tests.
// Connection settings come from defaults and ADEGENET_DATABASE_*
// environment variables, the database name is always TestDatabaseName.
func DatabaseConfig(t *testing.T) *config.DatabaseConfig {
	t.Helper()
	opts, err := ioconfig.Load("")
	if err != nil {
		t.Fatalf("Failed to load test configuration: %v", err)
	}
	cfg := config.New()
	cfg.Update(opts)
	cfg.Update([]config.Option{config.OptDatabaseDatabase(TestDatabaseName)})
	return &cfg.Database
}

// Connect returns an operator connected to the test database. The test is
// skipped in short mode or when PostgreSQL is not reachable.
//
// Usage:
//
//	op := iotesting.Connect(t)
//	defer op.Close()
func Connect(t *testing.T) db.Operator {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, DatabaseConfig(t)); err != nil {
		t.Skipf("PostgreSQL is not available: %v", err)
	}
	return op
}
