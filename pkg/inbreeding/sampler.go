package inbreeding

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sample draws n values of F from the grid density, independently and with
// replacement, picking grid points with probability equal to their mass.
// Only grid values can be returned, so the grid should be much denser than
// the sample.
func Sample(g *Grid, n int, src rand.Source) ([]float64, error) {
	if g.Degenerate() {
		return nil, DegenerateSampleError(n)
	}

	cat := distuv.NewCategorical(g.Mass, src)
	res := make([]float64, n)
	for i := range res {
		res[i] = g.F[int(cat.Rand())]
	}
	return res, nil
}

// newSource returns the random source for the individual at index idx.
// Streams depend only on the seed and the index, so results do not depend
// on the order in which individuals are processed.
func newSource(seed uint64, idx int) rand.Source {
	return rand.NewPCG(seed, uint64(idx))
}
