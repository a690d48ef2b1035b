// Package genotype describes multilocus genotype data the inbreeding
// estimator consumes: individuals, per-locus calls at arbitrary ploidy,
// and the population each individual belongs to.
//
// This is a pure package without I/O. Readers for files live in
// internal/iogeno.
package genotype

import (
	"maps"
	"slices"
)

// DefaultPopulation is the label used when no grouping is supplied.
// All individuals then form a single population.
const DefaultPopulation = "all"

// UnassignedPopulation collects individuals a Grouper does not know about.
const UnassignedPopulation = "unassigned"

// Call is a genotype call of one individual at one locus.
type Call struct {
	// Alleles holds allele identities, one per chromosome copy.
	// An empty string marks an allele that was not observed.
	Alleles []string

	// Missing is true when the whole call is absent.
	Missing bool
}

// NewCall creates a call from allele identities.
func NewCall(alleles ...string) Call {
	return Call{Alleles: alleles}
}

// MissingCall creates an absent genotype call.
func MissingCall() Call {
	return Call{Missing: true}
}

// Ploidy returns the number of allele copies in the call.
func (c Call) Ploidy() int {
	return len(c.Alleles)
}

// Observed returns alleles that were actually observed in the call.
func (c Call) Observed() []string {
	if c.Missing {
		return nil
	}
	res := make([]string, 0, len(c.Alleles))
	for _, a := range c.Alleles {
		if a != "" {
			res = append(res, a)
		}
	}
	return res
}

// Individual is one genotyped organism.
type Individual struct {
	// Name is the identifier of the individual in the dataset.
	Name string

	// Population is the population label carried by the dataset.
	// It can be overridden by a Grouper.
	Population string

	// Ploidy is the nominal number of allele copies per locus.
	Ploidy int

	// Calls are genotype calls in the order of Dataset.Loci.
	Calls []Call
}

// Dataset is a collection of individuals genotyped at the same loci.
type Dataset struct {
	// Loci are locus identifiers.
	Loci []string

	// Individuals are kept in the order supplied by the caller.
	Individuals []Individual
}

// Alleles returns sorted allele identities observed at a locus
// across the whole dataset.
func (d *Dataset) Alleles(locus int) []string {
	seen := make(map[string]struct{})
	for i := range d.Individuals {
		calls := d.Individuals[i].Calls
		if locus >= len(calls) {
			continue
		}
		for _, a := range calls[locus].Observed() {
			seen[a] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Validate checks structural consistency of the dataset.
func (d *Dataset) Validate() error {
	if len(d.Individuals) == 0 {
		return EmptyDatasetError()
	}

	names := make(map[string]struct{}, len(d.Individuals))
	for i := range d.Individuals {
		ind := &d.Individuals[i]
		if len(ind.Calls) != len(d.Loci) {
			return LocusCountError(ind.Name, len(ind.Calls), len(d.Loci))
		}
		if ind.Ploidy < 2 {
			return PloidyError(ind.Name, ind.Ploidy)
		}
		for l, c := range ind.Calls {
			if !c.Missing && c.Ploidy() != ind.Ploidy {
				return CallPloidyError(ind.Name, d.Loci[l], c.Ploidy(), ind.Ploidy)
			}
		}
		if _, ok := names[ind.Name]; ok {
			return DuplicateNameError(ind.Name)
		}
		names[ind.Name] = struct{}{}
	}
	return nil
}

// Grouper resolves an individual identifier to a population label.
// How the grouping was derived is of no concern to the estimator.
type Grouper interface {
	// Population returns the population of the named individual.
	// The boolean is false if the individual is not known to the Grouper.
	Population(name string) (string, bool)
}

// MapGrouper is a Grouper backed by a map from individual to population.
type MapGrouper map[string]string

// Population implements Grouper.
func (m MapGrouper) Population(name string) (string, bool) {
	res, ok := m[name]
	return res, ok
}

// PopulationOf returns the population label of an individual.
// A non-nil Grouper takes precedence over the label stored in the
// dataset. Individuals without any label fall into DefaultPopulation.
func PopulationOf(ind *Individual, g Grouper) string {
	if g != nil {
		if pop, ok := g.Population(ind.Name); ok && pop != "" {
			return pop
		}
		return UnassignedPopulation
	}
	if ind.Population == "" {
		return DefaultPopulation
	}
	return ind.Population
}
