package iogeno

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/vmikk/adegenet/pkg/errcode"
)

// HeaderError is returned when the header of a genotype table is unusable.
func HeaderError(path, reason string) error {
	msg := `Cannot use header of <em>%s</em>: %s

<em>Expected columns:</em>
  individual, [pop,] locus1, locus2, ...`
	vars := []any{path, reason}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GenotypeHeaderError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: bad header in %s: %s", fn.Name(), path, reason),
	}
}

// RowError is returned when a row of a genotype table cannot be parsed.
func RowError(path string, line int, err error) error {
	msg := "Cannot parse line <em>%d</em> of <em>%s</em>"
	vars := []any{line, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GenotypeRowError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s line %d: %w", fn.Name(), path, line, err),
	}
}

// CallError is returned for a genotype call that cannot be parsed.
func CallError(path string, line int, locus, call string) error {
	msg := "Cannot parse genotype <em>%s</em> at locus <em>%s</em>, line %d"
	vars := []any{call, locus, line}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GenotypeCallError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %s line %d, locus %s: bad call %q",
			fn.Name(), path, line, locus, call),
	}
}

// StrataError is returned for an unusable strata file.
func StrataError(path string, err error) error {
	msg := `Cannot use strata file <em>%s</em>

<em>Expected format:</em>
  population1:
    - individual1
    - individual2`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StrataFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: strata %s: %w", fn.Name(), path, err),
	}
}

// FrequencyError is returned for an unusable allele frequency file.
func FrequencyError(path string, err error) error {
	msg := `Cannot use allele frequency file <em>%s</em>

<em>Expected format:</em>
  population1:
    locus1:
      allele1: 0.7
      allele2: 0.3`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FrequencyFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: frequencies %s: %w", fn.Name(), path, err),
	}
}
