package ioexport

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/vmikk/adegenet/internal/iodb"
	"github.com/vmikk/adegenet/internal/ioschema"
	"github.com/vmikk/adegenet/pkg/config"
	"github.com/vmikk/adegenet/pkg/db"
	"github.com/vmikk/adegenet/pkg/schema"
)

// DefaultBatchSize is used when the configured batch size is not positive.
const DefaultBatchSize = 10_000

type pgExporter struct {
	name      string
	op        db.Operator
	batchSize int
}

// NewPostgres connects to PostgreSQL and migrates result tables.
func NewPostgres(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) (Exporter, error) {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, cfg); err != nil {
		return nil, err
	}
	return newPostgres(ctx, op, cfg)
}

func newPostgres(
	ctx context.Context,
	op db.Operator,
	cfg *config.DatabaseConfig,
) (Exporter, error) {
	if err := ioschema.NewManager(op).Migrate(ctx); err != nil {
		op.Close()
		return nil, err
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	res := &pgExporter{
		name:      fmt.Sprintf("postgres://%s:%d/%s", cfg.Host, cfg.Port, cfg.Database),
		op:        op,
		batchSize: batchSize,
	}
	return res, nil
}

// Export implements Exporter. A run is written in one transaction with
// COPY in batches.
func (p *pgExporter) Export(ctx context.Context, run *Run) error {
	pool := p.op.Pool()
	if pool == nil {
		return iodb.NotConnectedError()
	}
	recs := run.records()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return WriteError(p.name, err)
	}
	defer tx.Rollback(ctx)

	if err = copyRows(ctx, tx, []schema.Run{recs.run}, p.batchSize); err != nil {
		return WriteError(p.name, err)
	}
	if err = copyRows(ctx, tx, recs.estimates, p.batchSize); err != nil {
		return WriteError(p.name, err)
	}
	if err = copyRows(ctx, tx, recs.samples, p.batchSize); err != nil {
		return WriteError(p.name, err)
	}
	if err = copyRows(ctx, tx, recs.points, p.batchSize); err != nil {
		return WriteError(p.name, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return WriteError(p.name, err)
	}

	slog.Info("Results saved to PostgreSQL",
		"database", p.name,
		"run", run.ID,
		"estimates", len(recs.estimates),
		"samples", len(recs.samples),
		"likelihood_points", len(recs.points),
	)
	return nil
}

// Close implements Exporter.
func (p *pgExporter) Close() error {
	return p.op.Close()
}

// copyRows bulk inserts models into their table.
func copyRows[T schema.DDLGenerator](
	ctx context.Context,
	tx pgx.Tx,
	models []T,
	batchSize int,
) error {
	if len(models) == 0 {
		return nil
	}
	table := models[0].TableName()
	columns := schema.Columns(models[0])

	for i := 0; i < len(models); i += batchSize {
		end := min(i+batchSize, len(models))
		batch := models[i:end]

		rows := make([][]any, len(batch))
		for j := range batch {
			rows[j] = schema.Values(batch[j])
		}

		_, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{table},
			columns,
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("copy into %s: %w", table, err)
		}
	}
	return nil
}
