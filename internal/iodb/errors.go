package iodb

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/vmikk/adegenet/pkg/config"
	"github.com/vmikk/adegenet/pkg/errcode"
)

// ConnectionError is returned when PostgreSQL cannot be reached.
func ConnectionError(cfg *config.DatabaseConfig, err error) error {
	msg := `Could not connect to PostgreSQL

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>
  2. Verify the database exists:
     <em>psql -h %s -U %s -l</em>
  3. Check the database section of
     <em>~/.config/adegenet/config.yaml</em>
     or ADEGENET_DATABASE_* environment variables`
	vars := []any{cfg.Host, cfg.Port, cfg.Host, cfg.User}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot connect to %s:%d/%s: %w",
			fn.Name(), cfg.Host, cfg.Port, cfg.Database, err),
	}
}

// NotConnectedError is returned when the pool is used before Connect.
func NotConnectedError() error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database is not connected",
		Err:  fmt.Errorf("from %s: database is not connected", fn.Name()),
	}
}

// TableExistsCheckError is returned when a table lookup fails.
func TableExistsCheckError(table string, err error) error {
	msg := "Cannot check if table <em>%s</em> exists"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot check table %s: %w",
			fn.Name(), table, err),
	}
}
