// Package db defines the contract for PostgreSQL connections used by the
// result exporters.
package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vmikk/adegenet/pkg/config"
)

// Operator manages the lifecycle of a PostgreSQL connection pool.
// Pool() gives exporters access to CopyFrom for bulk inserts, schema
// creation is done by GORM AutoMigrate.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool, or nil before Connect.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the public schema.
	TableExists(ctx context.Context, tableName string) (bool, error)
}

// SchemaManager creates or updates tables that receive exported results.
type SchemaManager interface {
	// Migrate creates missing tables and columns. Existing data is kept.
	Migrate(ctx context.Context) error
}
