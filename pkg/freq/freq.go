// Package freq computes per-population allele frequency tables from
// genotype data.
//
// Tables are built once per estimation call and are never mutated
// afterwards, so many goroutines can read them without locking.
package freq

import (
	"maps"
	"math"
	"slices"

	"github.com/vmikk/adegenet/pkg/genotype"
	"gonum.org/v1/gonum/floats"
)

// locusFreq holds frequencies of alleles at one locus, sorted by allele.
type locusFreq struct {
	alleles []string
	freqs   []float64
	n       int
}

// Table is the allele frequency table of one population.
type Table struct {
	population string
	loci       []*locusFreq
}

// Tables maps population labels to their frequency tables.
type Tables map[string]*Table

// NewTable creates a table from allele frequencies given per locus.
// A nil or empty map marks a locus without observations. Frequencies of
// each locus are normalized to sum to 1; negative values are dropped.
func NewTable(population string, loci []map[string]float64) *Table {
	res := &Table{
		population: population,
		loci:       make([]*locusFreq, len(loci)),
	}
	for i, m := range loci {
		lf := &locusFreq{}
		for _, a := range slices.Sorted(maps.Keys(m)) {
			if !(m[a] > 0) {
				continue
			}
			lf.alleles = append(lf.alleles, a)
			lf.freqs = append(lf.freqs, m[a])
		}
		if len(lf.freqs) == 0 {
			continue
		}
		// division keeps a single-allele locus at exactly 1
		total := floats.Sum(lf.freqs)
		for j := range lf.freqs {
			lf.freqs[j] /= total
		}
		res.loci[i] = lf
	}
	return res
}

// Compute derives allele frequency tables for every population of the
// dataset. Missing calls, including partially observed ones, are left out
// of both counts and totals of their locus only.
func Compute(ds *genotype.Dataset, g genotype.Grouper) Tables {
	counts := make(map[string][]map[string]int)
	for i := range ds.Individuals {
		ind := &ds.Individuals[i]
		pop := genotype.PopulationOf(ind, g)
		pc, ok := counts[pop]
		if !ok {
			pc = make([]map[string]int, len(ds.Loci))
			counts[pop] = pc
		}
		for l := range ds.Loci {
			if l >= len(ind.Calls) {
				break
			}
			c := ind.Calls[l]
			if genotype.Classify(c) == genotype.Missing {
				continue
			}
			for _, a := range c.Alleles {
				if pc[l] == nil {
					pc[l] = make(map[string]int)
				}
				pc[l][a]++
			}
		}
	}

	res := make(Tables, len(counts))
	for pop, pc := range counts {
		res[pop] = fromCounts(pop, pc)
	}
	return res
}

func fromCounts(pop string, pc []map[string]int) *Table {
	res := &Table{population: pop, loci: make([]*locusFreq, len(pc))}
	for l, m := range pc {
		var n int
		for _, c := range m {
			n += c
		}
		if n == 0 {
			continue
		}
		lf := &locusFreq{n: n}
		for _, a := range slices.Sorted(maps.Keys(m)) {
			lf.alleles = append(lf.alleles, a)
			lf.freqs = append(lf.freqs, float64(m[a])/float64(n))
		}
		res.loci[l] = lf
	}
	return res
}

// Population returns the population label of the table.
func (t *Table) Population() string {
	return t.population
}

// LociNum returns the number of loci covered by the table.
func (t *Table) LociNum() int {
	return len(t.loci)
}

// Defined reports whether the population has at least one observed
// allele copy at the locus.
func (t *Table) Defined(locus int) bool {
	return locus >= 0 && locus < len(t.loci) && t.loci[locus] != nil
}

// Observations returns the number of observed allele copies at a locus.
// Tables created by NewTable report 0.
func (t *Table) Observations(locus int) int {
	if !t.Defined(locus) {
		return 0
	}
	return t.loci[locus].n
}

// Alleles returns alleles with non-zero frequency at a locus, sorted.
func (t *Table) Alleles(locus int) []string {
	if !t.Defined(locus) {
		return nil
	}
	return slices.Clone(t.loci[locus].alleles)
}

// Frequency returns the frequency of an allele at a locus. The boolean is
// false when frequencies at the locus are undefined.
func (t *Table) Frequency(locus int, allele string) (float64, bool) {
	if !t.Defined(locus) {
		return 0, false
	}
	lf := t.loci[locus]
	idx, ok := slices.BinarySearch(lf.alleles, allele)
	if !ok {
		return 0, true
	}
	return lf.freqs[idx], true
}

// Homozygosity returns the sum of p_i^k over alleles at a locus, the
// probability that k alleles drawn at random from the population are all
// identical. The boolean is false when frequencies at the locus are
// undefined.
func (t *Table) Homozygosity(locus, k int) (float64, bool) {
	if !t.Defined(locus) {
		return 0, false
	}
	var res float64
	for _, p := range t.loci[locus].freqs {
		res += math.Pow(p, float64(k))
	}
	// rounding can push a fixed locus a hair above 1
	return min(res, 1), true
}
