package ioexport

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vmikk/adegenet/pkg/schema"
	_ "modernc.org/sqlite"
)

type sqliteExporter struct {
	path string
	db   *sql.DB
}

// NewSQLite opens or creates a SQLite file at path and makes sure result
// tables exist. Several runs can share one file.
func NewSQLite(ctx context.Context, path string) (Exporter, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, OpenError(path, err)
	}
	res := &sqliteExporter{path: path, db: db}
	if err = res.createTables(ctx); err != nil {
		db.Close()
		return nil, OpenError(path, err)
	}
	return res, nil
}

func (s *sqliteExporter) createTables(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		return err
	}
	for _, m := range schema.DDLModels() {
		if _, err := s.db.ExecContext(ctx, m.TableDDL()); err != nil {
			return fmt.Errorf("create table %s: %w", m.TableName(), err)
		}
		for _, idx := range m.IndexDDL() {
			if _, err := s.db.ExecContext(ctx, idx); err != nil {
				return fmt.Errorf("create index on %s: %w", m.TableName(), err)
			}
		}
	}
	return nil
}

// Export implements Exporter. A run is written in one transaction.
func (s *sqliteExporter) Export(ctx context.Context, run *Run) error {
	recs := run.records()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WriteError(s.path, err)
	}
	defer tx.Rollback()

	if err = insert(ctx, tx, recs.run.TableName(), recs.run); err != nil {
		return WriteError(s.path, err)
	}
	if err = insertAll(ctx, tx, schema.Estimate{}.TableName(), recs.estimates); err != nil {
		return WriteError(s.path, err)
	}
	if err = insertAll(ctx, tx, schema.Sample{}.TableName(), recs.samples); err != nil {
		return WriteError(s.path, err)
	}
	if err = insertAll(ctx, tx, schema.LikelihoodPoint{}.TableName(), recs.points); err != nil {
		return WriteError(s.path, err)
	}

	if err = tx.Commit(); err != nil {
		return WriteError(s.path, err)
	}

	slog.Info("Results saved to SQLite",
		"path", s.path,
		"run", run.ID,
		"estimates", len(recs.estimates),
		"samples", len(recs.samples),
		"likelihood_points", len(recs.points),
	)
	return nil
}

// Close implements Exporter.
func (s *sqliteExporter) Close() error {
	return s.db.Close()
}

// insert adds one model row to a table.
func insert(ctx context.Context, tx *sql.Tx, table string, model any) error {
	_, err := tx.ExecContext(ctx, insertQuery(table, model), schema.Values(model)...)
	return err
}

// insertAll adds rows of one model type to a table with a prepared
// statement.
func insertAll[T any](ctx context.Context, tx *sql.Tx, table string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, insertQuery(table, rows[0]))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range rows {
		if _, err = stmt.ExecContext(ctx, schema.Values(rows[i])...); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}
	return nil
}

func insertQuery(table string, model any) string {
	cols := schema.Columns(model)
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), marks)
}
