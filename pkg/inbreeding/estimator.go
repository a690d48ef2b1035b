package inbreeding

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// invPhi is the inverse of the golden ratio.
var invPhi = (math.Sqrt(5) - 1) / 2

// Estimate returns F at the grid point of maximum mass. Ties go to the
// lowest F.
func Estimate(g *Grid) (float64, error) {
	if g.Degenerate() {
		return math.NaN(), DegenerateEstimateError()
	}
	return g.F[floats.MaxIdx(g.Mass)], nil
}

// Refine improves the grid estimate by maximizing the continuous
// log-likelihood between the neighbours of the grid argmax. The
// log-likelihood is concave in F, so a golden-section search within that
// bracket converges to the maximum. The result never leaves the bracket.
func Refine(lik *Likelihood, g *Grid) (float64, error) {
	est, err := Estimate(g)
	if err != nil || g.Len() < 2 {
		return est, err
	}

	idx := floats.MaxIdx(g.Mass)
	lo := g.F[max(idx-1, 0)]
	hi := g.F[min(idx+1, g.Len()-1)]

	res := goldenMax(lik.LogLik, lo, hi, 1e-10, 200)
	if lik.LogLik(res) < g.LogLik[idx] {
		return est, nil
	}
	return res, nil
}

// goldenMax finds the maximum of a unimodal function on [a, b].
func goldenMax(fn func(float64) float64, a, b, tol float64, maxIter int) float64 {
	c := b - invPhi*(b-a)
	d := a + invPhi*(b-a)
	fc, fd := fn(c), fn(d)
	for i := 0; i < maxIter && b-a > tol; i++ {
		if fc >= fd {
			b, d, fd = d, c, fc
			c = b - invPhi*(b-a)
			fc = fn(c)
		} else {
			a, c, fc = c, d, fd
			d = a + invPhi*(b-a)
			fd = fn(d)
		}
	}
	res := (a + b) / 2
	// endpoints can win when the maximum sits on the boundary of [0, 1]
	for _, v := range []float64{a, b} {
		if fn(v) > fn(res) {
			res = v
		}
	}
	return res
}
