package inbreeding

import (
	"context"
	"log/slog"
	"math"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/vmikk/adegenet/pkg/freq"
	"github.com/vmikk/adegenet/pkg/genotype"
	"golang.org/x/sync/errgroup"
)

// Engine estimates F for every individual of a dataset.
type Engine struct {
	p       Params
	resType ResultType
	grid    int
	seed    uint64
	jobs    int
}

// New validates parameters and creates an Engine. Configuration errors are
// returned here, before any data is touched.
func New(p Params) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	resType, _ := NewResultType(p.ResultType)

	seed := p.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	jobs := p.JobsNumber
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	grid := p.Grid()
	if resType == ResultSample && grid <= p.SampleSize {
		slog.Warn("Grid is not larger than sample size, samples repeat grid points",
			"grid_size", grid, "sample_size", p.SampleSize)
	}

	res := &Engine{
		p:       p,
		resType: resType,
		grid:    grid,
		seed:    seed,
		jobs:    jobs,
	}
	return res, nil
}

// Seed returns the seed used for sampling.
func (e *Engine) Seed() uint64 {
	return e.seed
}

// Run estimates F for all individuals of the dataset. Frequency tables are
// prepared once per population before individuals are dispatched to
// workers. An individual with a degenerate likelihood gets a marked result
// and does not stop the batch. On cancellation Run returns the results
// finished so far together with the context error.
func (e *Engine) Run(
	ctx context.Context,
	ds *genotype.Dataset,
) (*Results, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	pops := make([]string, len(ds.Individuals))
	for i := range ds.Individuals {
		pops[i] = genotype.PopulationOf(&ds.Individuals[i], e.p.Grouper)
	}

	tables, err := e.tables(ds, pops)
	if err != nil {
		return nil, err
	}

	keys := genericLabels(len(ds.Individuals))
	if e.p.TrueNames {
		for i := range ds.Individuals {
			keys[i] = ds.Individuals[i].Name
		}
	}

	res := &Results{
		Type:  e.resType,
		Seed:  e.seed,
		Grid:  e.grid,
		Items: make([]Result, len(ds.Individuals)),
	}

	slog.Info("Estimating inbreeding",
		"individuals", humanize.Comma(int64(len(ds.Individuals))),
		"populations", len(tables),
		"loci", len(ds.Loci),
		"result_type", e.resType.String(),
		"grid_size", e.grid,
		"seed", e.seed,
	)
	start := time.Now()

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.jobs)

	var cancelled error
	for i := range ds.Individuals {
		if err := gCtx.Err(); err != nil {
			cancelled = err
			break
		}
		g.Go(func() error {
			t := time.Now()
			ind := &ds.Individuals[i]
			r := e.estimate(i, ind, pops[i], tables[pops[i]])
			r.Key = keys[i]
			res.Items[i] = r
			if e.p.Observer != nil {
				e.p.Observer.Observe(&res.Items[i], time.Since(t))
			}
			return nil
		})
	}
	_ = g.Wait()

	degenerate := res.Degenerate()
	for _, k := range degenerate {
		r, _ := res.Get(k)
		slog.Warn("Degenerate likelihood", "individual", k,
			"population", r.Population, "error", r.Err)
	}

	slog.Info("Inbreeding estimation finished",
		"individuals", humanize.Comma(int64(len(res.Items))),
		"degenerate", len(degenerate),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)

	if cancelled == nil {
		cancelled = ctx.Err()
	}
	return res, cancelled
}

// tables returns frequency tables covering every population in pops.
func (e *Engine) tables(
	ds *genotype.Dataset,
	pops []string,
) (freq.Tables, error) {
	if e.p.Frequencies == nil {
		return freq.Compute(ds, e.p.Grouper), nil
	}
	for _, pop := range pops {
		if _, ok := e.p.Frequencies[pop]; !ok {
			return nil, UnknownPopulationError(pop)
		}
	}
	return e.p.Frequencies, nil
}

// estimate computes the result for one individual.
func (e *Engine) estimate(
	idx int,
	ind *genotype.Individual,
	pop string,
	tbl *freq.Table,
) Result {
	lik := NewLikelihood(ind, genotype.States(ind), tbl)
	res := Result{
		Index:      idx,
		Name:       ind.Name,
		Population: pop,
		Type:       e.resType,
		Loci:       lik.Loci(),
		Skipped:    lik.Skipped(),
	}
	if res.Loci == 0 {
		slog.Warn("No informative loci, density of F is flat",
			"individual", ind.Name, "population", pop)
	}

	if e.resType == ResultFunction {
		res.Func = lik
		if lik.Degenerate() {
			res.Degenerate = true
			res.Err = DegenerateIndividualError(ind.Name, pop)
		}
		return res
	}

	grid := BuildGrid(lik, e.grid)
	if grid.Degenerate() {
		res.Degenerate = true
		res.Err = DegenerateIndividualError(ind.Name, pop)
		if e.resType == ResultEstimate {
			res.MLE = math.NaN()
		}
		return res
	}

	switch e.resType {
	case ResultSample:
		// grid is not degenerate, Sample cannot fail
		res.Samples, _ = Sample(grid, e.p.SampleSize, newSource(e.seed, idx))
	case ResultEstimate:
		if e.p.Refine {
			res.MLE, _ = Refine(lik, grid)
		} else {
			res.MLE, _ = Estimate(grid)
		}
	}
	return res
}
