// Package inbreeding estimates individual inbreeding coefficients (F)
// from multilocus genotypes and population allele frequencies.
//
// The model is a one-parameter mixture: at every locus the alleles of an
// individual are identical by descent with probability F, otherwise they
// are drawn independently from the population. For an individual of
// ploidy k at a locus with allele frequencies p_i
//
//	P(hom | F) = F + (1 - F) * sum(p_i^k)
//	P(het | F) = 1 - P(hom | F)
//
// and the multilocus likelihood is the product over non-missing loci.
// The package can return the likelihood itself, a sample of F values drawn
// from the likelihood normalized on a grid, or the maximum-likelihood
// estimate.
//
// This is a pure package: computations are CPU bound and perform no I/O.
package inbreeding

import (
	"time"
)

// Observer receives every finished per-individual result.
// Observe is called from several goroutines at once, implementations
// must be safe for concurrent use.
type Observer interface {
	Observe(res *Result, elapsed time.Duration)
}

// Observers fans a result out to several observers.
type Observers []Observer

// Observe implements Observer.
func (o Observers) Observe(res *Result, elapsed time.Duration) {
	for _, v := range o {
		if v != nil {
			v.Observe(res, elapsed)
		}
	}
}
