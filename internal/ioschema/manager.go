// Package ioschema implements db.SchemaManager for PostgreSQL.
// This is an impure I/O package that wraps GORM AutoMigrate
// functionality.
package ioschema

import (
	"context"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/vmikk/adegenet/pkg/db"
	"github.com/vmikk/adegenet/pkg/schema"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// manager implements the db.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) db.SchemaManager {
	return &manager{operator: op}
}

// Migrate creates or updates result tables using GORM AutoMigrate.
func (m *manager) Migrate(ctx context.Context) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{Logger: logger.Discard},
	)
	if err != nil {
		return GORMConnectionError(err)
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return MigrateSchemaError(err)
	}

	return nil
}
