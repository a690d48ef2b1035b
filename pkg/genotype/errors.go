package genotype

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/vmikk/adegenet/pkg/errcode"
)

// EmptyDatasetError is returned when a dataset has no individuals.
func EmptyDatasetError() error {
	msg := "Genotype dataset contains no individuals"
	return &gn.Error{
		Code: errcode.DatasetEmptyError,
		Msg:  msg,
		Err:  errors.New("dataset has no individuals"),
	}
}

// LocusCountError is returned when an individual has a number of calls
// different from the number of loci.
func LocusCountError(name string, calls, loci int) error {
	msg := "Individual <em>%s</em> has %d genotype calls, expected %d"
	vars := []any{name, calls, loci}
	return &gn.Error{
		Code: errcode.DatasetLocusCountError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("individual %s: %d calls for %d loci",
			name, calls, loci),
	}
}

// PloidyError is returned for an individual with ploidy below 2.
func PloidyError(name string, ploidy int) error {
	msg := "Individual <em>%s</em> has ploidy %d, it must be at least 2"
	vars := []any{name, ploidy}
	return &gn.Error{
		Code: errcode.DatasetPloidyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("individual %s: invalid ploidy %d", name, ploidy),
	}
}

// CallPloidyError is returned when a call has a number of alleles
// different from the ploidy of its individual.
func CallPloidyError(name, locus string, alleles, ploidy int) error {
	msg := "Individual <em>%s</em> has %d alleles at locus <em>%s</em>, expected %d"
	vars := []any{name, alleles, locus, ploidy}
	return &gn.Error{
		Code: errcode.DatasetCallPloidyError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("individual %s, locus %s: %d alleles for ploidy %d",
			name, locus, alleles, ploidy),
	}
}

// DuplicateNameError is returned when two individuals share a name.
func DuplicateNameError(name string) error {
	msg := "Individual name <em>%s</em> is used more than once"
	vars := []any{name}
	return &gn.Error{
		Code: errcode.DatasetDuplicateNameError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("duplicate individual name %s", name),
	}
}
