package inbreeding

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Grid is a discrete approximation of the density of F: the likelihood
// evaluated at evenly spaced points of [0, 1] and normalized to unit mass,
// which amounts to a uniform prior on F.
type Grid struct {
	// F are the grid points, from 0 to 1 inclusive.
	F []float64
	// LogLik are log-likelihood values at the grid points.
	LogLik []float64
	// Mass are normalized probability masses. All masses are zero if the
	// grid is degenerate.
	Mass []float64

	degenerate bool
}

// BuildGrid evaluates a likelihood at m points spanning [0, 1] inclusive
// and normalizes it with the log-sum-exp trick. A single-point grid sits at
// F = 0. If the likelihood is zero at every point the grid is marked
// degenerate instead of being normalized.
func BuildGrid(lik *Likelihood, m int) *Grid {
	if m < 1 {
		m = 1
	}
	res := &Grid{
		F:      make([]float64, m),
		LogLik: make([]float64, m),
		Mass:   make([]float64, m),
	}
	if m > 1 {
		floats.Span(res.F, 0, 1)
	}

	for i, f := range res.F {
		res.LogLik[i] = lik.LogLik(f)
	}

	lse := floats.LogSumExp(res.LogLik)
	if math.IsInf(lse, -1) || math.IsNaN(lse) {
		res.degenerate = true
		return res
	}

	for i, ll := range res.LogLik {
		res.Mass[i] = math.Exp(ll - lse)
	}
	floats.Scale(1/floats.Sum(res.Mass), res.Mass)
	return res
}

// Len returns the number of grid points.
func (g *Grid) Len() int {
	return len(g.F)
}

// Degenerate reports whether the likelihood is zero at every grid point.
func (g *Grid) Degenerate() bool {
	return g.degenerate
}

// Mean returns the expectation of F under the grid density, or NaN for a
// degenerate grid.
func (g *Grid) Mean() float64 {
	if g.degenerate {
		return math.NaN()
	}
	return floats.Dot(g.F, g.Mass)
}

// CDF returns cumulative masses at the grid points.
func (g *Grid) CDF() []float64 {
	res := make([]float64, len(g.Mass))
	floats.CumSum(res, g.Mass)
	return res
}
