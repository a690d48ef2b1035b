package inbreeding

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/vmikk/adegenet/pkg/errcode"
)

// ErrDegenerate is wrapped by every error about a likelihood that is zero
// for all values of F.
var ErrDegenerate = errors.New("likelihood is zero for every F")

// InvalidResultTypeError is returned for an unknown result type.
func InvalidResultTypeError(s string) error {
	msg := `Unknown result type <em>%s</em>

<em>Valid values are:</em>
  * sample
  * function
  * estimate`
	vars := []any{s}
	return &gn.Error{
		Code: errcode.InvalidResultTypeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown result type %q", s),
	}
}

// InvalidSampleSizeError is returned for a non-positive sample size.
func InvalidSampleSizeError(n int) error {
	msg := "Sample size has to be a positive number, got %d"
	vars := []any{n}
	return &gn.Error{
		Code: errcode.InvalidSampleSizeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid sample size %d", n),
	}
}

// InvalidGridSizeError is returned for a grid size that is not positive.
// Zero is accepted only as the "use default" value of Params.
func InvalidGridSizeError(m int) error {
	msg := "Grid size has to be a positive number, got %d"
	vars := []any{m}
	return &gn.Error{
		Code: errcode.InvalidGridSizeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid grid size %d", m),
	}
}

// UnknownPopulationError is returned when supplied frequency tables do not
// cover a population present in the data.
func UnknownPopulationError(pop string) error {
	msg := `No allele frequencies supplied for population <em>%s</em>

<em>How to fix:</em>
  1. Add the population to the frequency file
  2. Or let frequencies be computed from the genotypes`
	vars := []any{pop}
	return &gn.Error{
		Code: errcode.UnknownPopulationError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("no frequency table for population %s", pop),
	}
}

// DegenerateSampleError is returned when a sample is requested from a
// degenerate grid.
func DegenerateSampleError(n int) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DegenerateLikelihoodError,
		Msg:  "Cannot draw %d values of F: likelihood is zero everywhere",
		Vars: []any{n},
		Err:  fmt.Errorf("from %s: %w", fn.Name(), ErrDegenerate),
	}
}

// DegenerateEstimateError is returned when an estimate is requested from a
// degenerate grid.
func DegenerateEstimateError() error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DegenerateLikelihoodError,
		Msg:  "Cannot estimate F: likelihood is zero everywhere",
		Err:  fmt.Errorf("from %s: %w", fn.Name(), ErrDegenerate),
	}
}

// DegenerateIndividualError marks an individual whose genotypes are
// incompatible with its population frequencies under every F.
func DegenerateIndividualError(name, pop string) error {
	msg := `Individual <em>%s</em> has zero likelihood for every F

It is heterozygous at a locus fixed for one allele in population <em>%s</em>.`
	vars := []any{name, pop}
	return &gn.Error{
		Code: errcode.DegenerateLikelihoodError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("individual %s (population %s): %w", name, pop, ErrDegenerate),
	}
}
