package inbreeding

import (
	"math"

	"github.com/vmikk/adegenet/pkg/freq"
	"github.com/vmikk/adegenet/pkg/genotype"
)

// term is the contribution of one locus to the likelihood.
type term struct {
	// hw is the Hardy-Weinberg homozygosity sum(p_i^k) at the locus.
	hw  float64
	hom bool
}

// logP returns the log-probability of the observed state at F.
func (t term) logP(f float64) float64 {
	var p float64
	if t.hom {
		p = f + (1-f)*t.hw
	} else {
		p = (1 - f) * (1 - t.hw)
	}
	return safeLog(p)
}

// safeLog saturates the log of a non-positive probability to -Inf.
func safeLog(p float64) float64 {
	if p <= 0 {
		return math.Inf(-1)
	}
	return math.Log(p)
}

// Likelihood is the likelihood of F for one individual. It captures the
// homozygosity states of the individual together with its population
// frequencies and can be evaluated any number of times.
type Likelihood struct {
	terms   []term
	skipped int
}

// NewLikelihood builds the likelihood of F for an individual from the
// homozygosity states of its calls and the frequency table of its
// population. Missing calls, and loci where the population has no observed
// alleles, do not contribute.
func NewLikelihood(
	ind *genotype.Individual,
	states []genotype.State,
	tbl *freq.Table,
) *Likelihood {
	res := &Likelihood{terms: make([]term, 0, len(states))}
	for l, st := range states {
		if st == genotype.Missing {
			res.skipped++
			continue
		}
		k := ind.Calls[l].Ploidy()
		hw, ok := tbl.Homozygosity(l, k)
		if !ok {
			res.skipped++
			continue
		}
		res.terms = append(res.terms, term{hw: hw, hom: st == genotype.Homozygous})
	}
	return res
}

// LogLik returns the log-likelihood of F. Values of F outside [0, 1]
// have zero likelihood.
func (l *Likelihood) LogLik(f float64) float64 {
	if f < 0 || f > 1 || math.IsNaN(f) {
		return math.Inf(-1)
	}
	var res float64
	for _, t := range l.terms {
		res += t.logP(f)
		if math.IsInf(res, -1) {
			return res
		}
	}
	return res
}

// Lik returns the likelihood of F.
func (l *Likelihood) Lik(f float64) float64 {
	return math.Exp(l.LogLik(f))
}

// Loci returns the number of loci contributing to the likelihood.
func (l *Likelihood) Loci() int {
	return len(l.terms)
}

// Skipped returns the number of loci excluded as missing or undefined.
func (l *Likelihood) Skipped() int {
	return l.skipped
}

// Degenerate reports whether the likelihood is zero for every F. It
// happens when the individual is heterozygous at a locus fixed for a
// single allele in its population.
func (l *Likelihood) Degenerate() bool {
	for _, t := range l.terms {
		if !t.hom && t.hw >= 1 {
			return true
		}
	}
	return false
}

// Grid evaluates the likelihood on m evenly spaced points of [0, 1].
func (l *Likelihood) Grid(m int) *Grid {
	return BuildGrid(l, m)
}
