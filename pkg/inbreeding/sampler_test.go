package inbreeding

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmikk/adegenet/pkg/errcode"
)

func TestSampleValuesOnGrid(t *testing.T) {
	g := BuildGrid(mixed(), 10)
	res, err := Sample(g, 5, rand.NewPCG(1, 2))
	require.NoError(t, err)
	require.Len(t, res, 5)
	for _, v := range res {
		assert.True(t, slices.Contains(g.F, v), "%v is not a grid value", v)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestSampleFrequencies(t *testing.T) {
	g := BuildGrid(mixed(), 10)
	n := 100_000
	res, err := Sample(g, n, rand.NewPCG(42, 0))
	require.NoError(t, err)

	counts := make(map[float64]int)
	for _, v := range res {
		counts[v]++
	}
	for i, f := range g.F {
		got := float64(counts[f]) / float64(n)
		assert.InDelta(t, g.Mass[i], got, 0.01, "F = %v", f)
	}
}

func TestSampleMeanConverges(t *testing.T) {
	g := BuildGrid(mixed(), 1000)
	n := 100_000
	res, err := Sample(g, n, rand.NewPCG(7, 7))
	require.NoError(t, err)

	var sum float64
	for _, v := range res {
		sum += v
	}
	assert.InDelta(t, g.Mean(), sum/float64(n), 0.005)
}

func TestSampleReproducible(t *testing.T) {
	g := BuildGrid(mixed(), 2000)
	a, err := Sample(g, 200, newSource(123, 4))
	require.NoError(t, err)
	b, err := Sample(g, 200, newSource(123, 4))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := Sample(g, 200, newSource(123, 5))
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestSampleSinglePoint(t *testing.T) {
	g := BuildGrid(mixed(), 1)
	res, err := Sample(g, 3, rand.NewPCG(1, 1))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, res)
}

func TestSampleDegenerate(t *testing.T) {
	lik := &Likelihood{terms: []term{{hw: 1, hom: false}}}
	g := BuildGrid(lik, 10)
	res, err := Sample(g, 5, rand.NewPCG(1, 1))
	assert.Nil(t, res)
	require.Error(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, errcode.DegenerateLikelihoodError, gnErr.Code)
	assert.ErrorIs(t, gnErr.Err, ErrDegenerate)
}
