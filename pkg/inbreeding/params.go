package inbreeding

import (
	"strings"

	"github.com/vmikk/adegenet/pkg/freq"
	"github.com/vmikk/adegenet/pkg/genotype"
)

// ResultType selects what is returned for every individual.
type ResultType int

const (
	// ResultSample returns values of F drawn from the grid density.
	ResultSample ResultType = iota
	// ResultFunction returns the likelihood of F.
	ResultFunction
	// ResultEstimate returns the maximum-likelihood estimate of F.
	ResultEstimate
)

var resultTypes = map[string]ResultType{
	"sample":   ResultSample,
	"function": ResultFunction,
	"estimate": ResultEstimate,
}

// String implements fmt.Stringer.
func (r ResultType) String() string {
	for k, v := range resultTypes {
		if v == r {
			return k
		}
	}
	return "unknown"
}

// NewResultType converts a string to a ResultType.
func NewResultType(s string) (ResultType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ResultSample, nil
	}
	res, ok := resultTypes[s]
	if !ok {
		return ResultSample, InvalidResultTypeError(s)
	}
	return res, nil
}

const (
	// DefaultSampleSize is the number of F values sampled per individual.
	DefaultSampleSize = 200
	// GridFactor relates default grid size to sample size.
	GridFactor = 10
)

// Params configure an estimation run.
type Params struct {
	// ResultType is "sample", "function" or "estimate".
	// Empty string means "sample".
	ResultType string

	// SampleSize is the number of values drawn per individual (N).
	// Used only by the "sample" result type.
	SampleSize int

	// GridSize is the number of grid points over [0, 1] (M).
	// Zero means SampleSize * 10. Should be much larger than SampleSize.
	GridSize int

	// TrueNames keeps individual names as result keys. Otherwise keys are
	// positional labels ("001", "002", ...).
	TrueNames bool

	// Seed makes samples reproducible. Zero picks a random seed.
	Seed uint64

	// Refine improves estimates beyond grid resolution.
	Refine bool

	// JobsNumber limits the number of individuals processed at once.
	// Zero or less means one per CPU.
	JobsNumber int

	// Grouper overrides population labels stored in the dataset.
	Grouper genotype.Grouper

	// Frequencies are pre-computed allele frequency tables. When nil
	// they are computed from the dataset.
	Frequencies freq.Tables

	// Observer, if set, receives every finished result.
	Observer Observer
}

// DefaultParams returns parameters with default values.
func DefaultParams() Params {
	return Params{
		ResultType: "sample",
		SampleSize: DefaultSampleSize,
		TrueNames:  true,
	}
}

// Validate checks parameters before any computation starts.
func (p Params) Validate() error {
	if _, err := NewResultType(p.ResultType); err != nil {
		return err
	}
	if p.SampleSize <= 0 {
		return InvalidSampleSizeError(p.SampleSize)
	}
	if p.GridSize < 0 {
		return InvalidGridSizeError(p.GridSize)
	}
	return nil
}

// Grid returns the effective grid size.
func (p Params) Grid() int {
	if p.GridSize > 0 {
		return p.GridSize
	}
	return p.SampleSize * GridFactor
}
