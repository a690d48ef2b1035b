// Package ioexport writes inbreeding results to text streams, SQLite files
// and PostgreSQL.
package ioexport

import (
	"context"
	"database/sql"
	"math"
	"strconv"
	"time"

	"github.com/gnames/gnuuid"
	"github.com/google/uuid"
	"github.com/vmikk/adegenet/pkg/inbreeding"
	"github.com/vmikk/adegenet/pkg/schema"
	"gonum.org/v1/gonum/stat"

	app "github.com/vmikk/adegenet/pkg"
)

// Exporter writes results of an estimation run somewhere.
type Exporter interface {
	// Export writes all results of a run.
	Export(ctx context.Context, run *Run) error

	// Close releases resources held by the exporter.
	Close() error
}

// Run is a finished estimation call together with its provenance.
type Run struct {
	// ID is a random UUID of the run.
	ID string

	// Source is the genotype file of the run.
	Source string

	// Params are parameters of the run.
	Params inbreeding.Params

	// Results are per-individual results.
	Results *inbreeding.Results

	// CreatedAt is the time the run finished.
	CreatedAt time.Time
}

// NewRun wraps results of an estimation call.
func NewRun(
	source string,
	p inbreeding.Params,
	res *inbreeding.Results,
) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Source:    source,
		Params:    p,
		Results:   res,
		CreatedAt: time.Now().UTC(),
	}
}

// RecordID returns a stable identifier of an individual's record within
// the run.
func (r *Run) RecordID(key string) string {
	return gnuuid.New(r.ID + "|" + key).String()
}

// records are rows of a run ready for database tables.
type records struct {
	run       schema.Run
	estimates []schema.Estimate
	samples   []schema.Sample
	points    []schema.LikelihoodPoint
}

func (r *Run) records() *records {
	res := &records{
		run: schema.Run{
			ID:          r.ID,
			Source:      r.Source,
			ResultType:  r.Results.Type.String(),
			SampleSize:  r.Params.SampleSize,
			GridSize:    r.Results.Grid,
			Seed:        strconv.FormatUint(r.Results.Seed, 10),
			Refine:      r.Params.Refine,
			Individuals: len(r.Results.Items),
			Degenerate:  len(r.Results.Degenerate()),
			Version:     app.Version,
			CreatedAt:   r.CreatedAt,
		},
		estimates: make([]schema.Estimate, 0, len(r.Results.Items)),
	}

	for i := range r.Results.Items {
		item := &r.Results.Items[i]
		id := r.RecordID(item.Key)
		est := schema.Estimate{
			ID:         id,
			RunID:      r.ID,
			Idx:        item.Index,
			Key:        item.Key,
			Name:       item.Name,
			Population: item.Population,
			Loci:       item.Loci,
			Skipped:    item.Skipped,
			Degenerate: item.Degenerate,
		}
		if item.Err != nil {
			est.Error = item.Err.Error()
		}

		switch item.Type {
		case inbreeding.ResultEstimate:
			est.MLE = nullFloat(item.MLE)
		case inbreeding.ResultSample:
			if len(item.Samples) > 0 {
				est.SampleMean = nullFloat(stat.Mean(item.Samples, nil))
			}
			for j, f := range item.Samples {
				res.samples = append(res.samples, schema.Sample{
					EstimateID: id,
					Draw:       j + 1,
					RunID:      r.ID,
					F:          f,
				})
			}
		case inbreeding.ResultFunction:
			if item.Func == nil {
				break
			}
			g := item.Func.Grid(r.Results.Grid)
			for j := range g.F {
				res.points = append(res.points, schema.LikelihoodPoint{
					EstimateID: id,
					Point:      j,
					RunID:      r.ID,
					F:          g.F[j],
					LogLik:     nullFloat(g.LogLik[j]),
					Mass:       g.Mass[j],
				})
			}
		}
		res.estimates = append(res.estimates, est)
	}
	return res
}

// nullFloat turns non-finite values into NULL.
func nullFloat(f float64) sql.NullFloat64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}
