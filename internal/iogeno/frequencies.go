package iogeno

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/vmikk/adegenet/internal/iofs"
	"github.com/vmikk/adegenet/pkg/freq"
	"gopkg.in/yaml.v3"
)

// ReadFrequencies reads pre-computed allele frequencies from a YAML file.
// Tables are aligned with loci of the genotype data.
func ReadFrequencies(path string, loci []string) (freq.Tables, error) {
	f, err := iofs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseFrequencies(f, path, loci)
}

// ParseFrequencies parses YAML of the form population -> locus -> allele
// -> frequency. Loci absent for a population have undefined frequencies
// there, loci unknown to the genotype data are ignored. Frequencies of a
// locus are normalized to sum to one.
func ParseFrequencies(
	r io.Reader,
	path string,
	loci []string,
) (freq.Tables, error) {
	var data map[string]map[string]map[string]float64
	if err := yaml.NewDecoder(r).Decode(&data); err != nil && err != io.EOF {
		return nil, FrequencyError(path, err)
	}
	if len(data) == 0 {
		return nil, FrequencyError(path, fmt.Errorf("no populations"))
	}

	idx := make(map[string]int, len(loci))
	for i, l := range loci {
		idx[l] = i
	}

	res := make(freq.Tables, len(data))
	for pop, byLocus := range data {
		tbl := make([]map[string]float64, len(loci))
		for locus, alleles := range byLocus {
			i, ok := idx[locus]
			if !ok {
				slog.Warn("Locus from frequency file is not in genotypes",
					"population", pop, "locus", locus)
				continue
			}
			for a, v := range alleles {
				if v < 0 {
					return nil, FrequencyError(path,
						fmt.Errorf("negative frequency of %s at %s in %s", a, locus, pop))
				}
			}
			tbl[i] = alleles
		}
		res[pop] = freq.NewTable(pop, tbl)
	}
	return res, nil
}
