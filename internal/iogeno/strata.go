package iogeno

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/gnames/gnlib"
	"github.com/vmikk/adegenet/internal/iofs"
	"github.com/vmikk/adegenet/pkg/genotype"
	"gopkg.in/yaml.v3"
)

// ReadStrata reads a YAML file mapping population labels to lists of
// individuals.
func ReadStrata(path string) (genotype.MapGrouper, error) {
	f, err := iofs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseStrata(f, path)
}

// ParseStrata parses population membership from YAML. An individual may
// belong to one population only.
func ParseStrata(r io.Reader, path string) (genotype.MapGrouper, error) {
	var data map[string][]string
	if err := yaml.NewDecoder(r).Decode(&data); err != nil && err != io.EOF {
		return nil, StrataError(path, err)
	}
	if len(data) == 0 {
		return nil, StrataError(path, fmt.Errorf("no populations"))
	}

	res := make(genotype.MapGrouper)
	for pop, inds := range data {
		pop = gnlib.FixUtf8(pop)
		if pop == "" {
			return nil, StrataError(path, fmt.Errorf("empty population label"))
		}
		for _, ind := range inds {
			ind = gnlib.FixUtf8(ind)
			if prev, ok := res[ind]; ok && prev != pop {
				return nil, StrataError(path,
					fmt.Errorf("individual %s is in %s and %s", ind, prev, pop))
			}
			res[ind] = pop
		}
	}
	slog.Debug("Strata loaded", "populations", len(data), "individuals", len(res))
	return res, nil
}
