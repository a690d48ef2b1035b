package inbreeding_test

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmikk/adegenet/pkg/errcode"
	"github.com/vmikk/adegenet/pkg/freq"
	"github.com/vmikk/adegenet/pkg/genotype"
	"github.com/vmikk/adegenet/pkg/inbreeding"
)

func call(a ...string) genotype.Call {
	return genotype.NewCall(a...)
}

// testDataset has two populations and one missing call. No locus is fixed
// in a population where somebody is heterozygous.
func testDataset() *genotype.Dataset {
	return &genotype.Dataset{
		Loci: []string{"L1", "L2", "L3"},
		Individuals: []genotype.Individual{
			{Name: "a", Population: "P1", Ploidy: 2, Calls: []genotype.Call{
				call("1", "1"), call("a", "b"), call("x", "x"),
			}},
			{Name: "b", Population: "P1", Ploidy: 2, Calls: []genotype.Call{
				call("1", "2"), call("a", "a"), call("x", "y"),
			}},
			{Name: "c", Population: "P2", Ploidy: 2, Calls: []genotype.Call{
				call("2", "2"), call("a", "b"), genotype.MissingCall(),
			}},
			{Name: "d", Population: "P2", Ploidy: 2, Calls: []genotype.Call{
				call("1", "2"), call("b", "b"), call("y", "y"),
			}},
			{Name: "e", Population: "P2", Ploidy: 2, Calls: []genotype.Call{
				call("1", "1"), call("a", "a"), call("x", "y"),
			}},
		},
	}
}

func params(resType string) inbreeding.Params {
	p := inbreeding.DefaultParams()
	p.ResultType = resType
	p.SampleSize = 20
	p.Seed = 1234
	return p
}

func run(t *testing.T, p inbreeding.Params, ds *genotype.Dataset) *inbreeding.Results {
	t.Helper()
	e, err := inbreeding.New(p)
	require.NoError(t, err)
	res, err := e.Run(context.Background(), ds)
	require.NoError(t, err)
	return res
}

func TestResultType(t *testing.T) {
	tests := []struct {
		in      string
		want    inbreeding.ResultType
		wantErr bool
	}{
		{"", inbreeding.ResultSample, false},
		{"sample", inbreeding.ResultSample, false},
		{"Function", inbreeding.ResultFunction, false},
		{" estimate ", inbreeding.ResultEstimate, false},
		{"mle", inbreeding.ResultSample, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			res, err := inbreeding.NewResultType(tt.in)
			assert.Equal(t, tt.want, res)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
	assert.Equal(t, "estimate", inbreeding.ResultEstimate.String())
}

func TestNewConfigErrors(t *testing.T) {
	tests := []struct {
		msg  string
		mod  func(*inbreeding.Params)
		code gn.ErrorCode
	}{
		{"bad result type", func(p *inbreeding.Params) { p.ResultType = "median" },
			errcode.InvalidResultTypeError},
		{"zero sample size", func(p *inbreeding.Params) { p.SampleSize = 0 },
			errcode.InvalidSampleSizeError},
		{"negative sample size", func(p *inbreeding.Params) { p.SampleSize = -3 },
			errcode.InvalidSampleSizeError},
		{"negative grid", func(p *inbreeding.Params) { p.GridSize = -1 },
			errcode.InvalidGridSizeError},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			p := inbreeding.DefaultParams()
			tt.mod(&p)
			e, err := inbreeding.New(p)
			assert.Nil(t, e)
			require.Error(t, err)
			gnErr, ok := err.(*gn.Error)
			require.True(t, ok, "Error should be of type *gn.Error")
			assert.Equal(t, tt.code, gnErr.Code)
		})
	}
}

func TestParamsGrid(t *testing.T) {
	p := inbreeding.DefaultParams()
	assert.Equal(t, 2000, p.Grid())
	p.GridSize = 50
	assert.Equal(t, 50, p.Grid())
}

func TestNewSmallGridWarning(t *testing.T) {
	var buf bytes.Buffer
	old := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(old)

	tests := []struct {
		name    string
		resType string
		grid    int
		warn    bool
	}{
		{"default grid", "sample", 0, false},
		{"grid equals sample", "sample", 20, true},
		{"grid below sample", "sample", 5, true},
		{"estimate ignores sample size", "estimate", 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			p := params(tt.resType)
			p.GridSize = tt.grid
			_, err := inbreeding.New(p)
			require.NoError(t, err)
			assert.Equal(t, tt.warn,
				bytes.Contains(buf.Bytes(), []byte("Grid is not larger than sample size")))
		})
	}
}

func TestRunSample(t *testing.T) {
	p := params("sample")
	p.GridSize = 100
	res := run(t, p, testDataset())

	assert.Equal(t, inbreeding.ResultSample, res.Type)
	assert.Equal(t, uint64(1234), res.Seed)
	assert.Equal(t, 100, res.Grid)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, res.Keys())
	assert.Empty(t, res.Degenerate())

	for i, r := range res.Items {
		assert.Equal(t, i, r.Index)
		assert.Len(t, r.Samples, 20)
		for _, v := range r.Samples {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}

	c, ok := res.Get("c")
	require.True(t, ok)
	assert.Equal(t, "P2", c.Population)
	assert.Equal(t, 2, c.Loci)
	assert.Equal(t, 1, c.Skipped)
}

func TestRunReproducible(t *testing.T) {
	ds := testDataset()
	p := params("sample")
	p.JobsNumber = 1
	res1 := run(t, p, ds)

	p.JobsNumber = 8
	res2 := run(t, p, ds)

	for i := range res1.Items {
		assert.Equal(t, res1.Items[i].Samples, res2.Items[i].Samples)
	}

	p.Seed = 4321
	res3 := run(t, p, ds)
	var differ bool
	for i := range res1.Items {
		if !assert.ObjectsAreEqual(res1.Items[i].Samples, res3.Items[i].Samples) {
			differ = true
		}
	}
	assert.True(t, differ)
}

func TestRunRandomSeed(t *testing.T) {
	p := params("sample")
	p.Seed = 0
	e, err := inbreeding.New(p)
	require.NoError(t, err)
	assert.NotZero(t, e.Seed())
}

func TestRunFunction(t *testing.T) {
	res := run(t, params("function"), testDataset())
	for _, r := range res.Items {
		require.NotNil(t, r.Func)
		assert.Nil(t, r.Samples)
		ll0 := r.Func.LogLik(0)
		assert.False(t, math.IsNaN(ll0))
		assert.InDelta(t, math.Exp(ll0), r.Func.Lik(0), 1e-12)
	}
}

func TestRunEstimate(t *testing.T) {
	p := params("estimate")
	p.GridSize = 1001
	res := run(t, p, testDataset())
	for _, r := range res.Items {
		assert.GreaterOrEqual(t, r.MLE, 0.0)
		assert.LessOrEqual(t, r.MLE, 1.0)
	}

	p.Refine = true
	refined := run(t, p, testDataset())
	for i, r := range refined.Items {
		assert.InDelta(t, res.Items[i].MLE, r.MLE, 1.0/1000+1e-12)
	}
}

func TestRunGenericNames(t *testing.T) {
	p := params("estimate")
	p.TrueNames = false
	res := run(t, p, testDataset())
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, res.Keys())

	ds := testDataset()
	for i := range 7 {
		ind := ds.Individuals[4]
		ind.Name = ind.Name + string(rune('f'+i))
		ds.Individuals = append(ds.Individuals, ind)
	}
	res = run(t, p, ds)
	keys := res.Keys()
	require.Len(t, keys, 12)
	assert.Equal(t, "01", keys[0])
	assert.Equal(t, "12", keys[11])
}

func TestRunDegenerate(t *testing.T) {
	ds := &genotype.Dataset{
		Loci: []string{"L1", "L2"},
		Individuals: []genotype.Individual{
			{Name: "het", Ploidy: 2, Calls: []genotype.Call{
				call("a", "b"), call("1", "2"),
			}},
			{Name: "hom", Ploidy: 2, Calls: []genotype.Call{
				call("a", "a"), call("1", "1"),
			}},
		},
	}
	tbl := freq.NewTable(genotype.DefaultPopulation, []map[string]float64{
		{"a": 1},
		{"1": 0.5, "2": 0.5},
	})

	for _, rt := range []string{"sample", "function", "estimate"} {
		t.Run(rt, func(t *testing.T) {
			p := params(rt)
			p.Frequencies = freq.Tables{genotype.DefaultPopulation: tbl}
			res := run(t, p, ds)
			assert.Equal(t, []string{"het"}, res.Degenerate())

			het, _ := res.Get("het")
			assert.True(t, het.Degenerate)
			assert.Equal(t, "NA", het.Value())
			gnErr, ok := het.Err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, errcode.DegenerateLikelihoodError, gnErr.Code)
			assert.ErrorIs(t, gnErr.Err, inbreeding.ErrDegenerate)

			hom, _ := res.Get("hom")
			assert.False(t, hom.Degenerate)
			assert.NoError(t, hom.Err)
		})
	}
}

func TestRunGrouper(t *testing.T) {
	p := params("estimate")
	p.Grouper = genotype.MapGrouper{"a": "G1", "b": "G1", "c": "G2"}
	res := run(t, p, testDataset())

	pops := make(map[string]string)
	for _, r := range res.Items {
		pops[r.Name] = r.Population
	}
	assert.Equal(t, map[string]string{
		"a": "G1", "b": "G1", "c": "G2",
		"d": genotype.UnassignedPopulation,
		"e": genotype.UnassignedPopulation,
	}, pops)
}

func TestRunUnknownPopulation(t *testing.T) {
	p := params("estimate")
	p.Frequencies = freq.Tables{
		"P1": freq.NewTable("P1", make([]map[string]float64, 3)),
	}
	e, err := inbreeding.New(p)
	require.NoError(t, err)
	_, err = e.Run(context.Background(), testDataset())
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.UnknownPopulationError, gnErr.Code)
}

func TestRunInvalidDataset(t *testing.T) {
	e, err := inbreeding.New(params("sample"))
	require.NoError(t, err)
	_, err = e.Run(context.Background(), &genotype.Dataset{})
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DatasetEmptyError, gnErr.Code)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e, err := inbreeding.New(params("sample"))
	require.NoError(t, err)
	res, err := e.Run(ctx, testDataset())
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	for _, r := range res.Items {
		assert.Empty(t, r.Samples)
	}
}

type countObserver struct {
	mu   sync.Mutex
	keys []string
}

func (o *countObserver) Observe(res *inbreeding.Result, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.keys = append(o.keys, res.Key)
}

func TestRunObserver(t *testing.T) {
	o1, o2 := &countObserver{}, &countObserver{}
	p := params("sample")
	p.Observer = inbreeding.Observers{o1, nil, o2}
	run(t, p, testDataset())

	assert.ElementsMatch(t, []string{"a", "b", "c", "d", "e"}, o1.keys)
	assert.ElementsMatch(t, o1.keys, o2.keys)
}
