// Package iogeno reads genotype tables, strata files and allele frequency
// files into the types used by the inbreeding estimator.
package iogeno

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gnames/gnlib"
	"github.com/vmikk/adegenet/internal/iofs"
	"github.com/vmikk/adegenet/pkg/genotype"
)

// missingTokens mark an absent genotype or allele.
var missingTokens = map[string]struct{}{
	"":   {},
	"na": {},
	"0":  {},
	"-":  {},
	".":  {},
}

// popColumns are header names recognized as the population column.
var popColumns = map[string]struct{}{
	"pop":        {},
	"population": {},
	"strata":     {},
}

// DetectDelimiter guesses the field delimiter from the file extension.
// Files ending with .tsv, .tab or .txt are tab-delimited, everything else
// is comma-delimited.
func DetectDelimiter(path string) rune {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".tab", ".txt":
		return '\t'
	default:
		return ','
	}
}

// ReadGenotypes reads a genotype table from a file. If delim is zero it
// is detected from the file extension.
func ReadGenotypes(path string, delim rune) (*genotype.Dataset, error) {
	f, err := iofs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if delim == 0 {
		delim = DetectDelimiter(path)
	}
	return ParseGenotypes(f, path, delim)
}

// ParseGenotypes parses a delimited genotype table. The first column holds
// names of individuals, an optional second column named "pop" holds
// population labels, the remaining columns are loci. A call lists alleles
// separated by '/' or '|'. Calls that are empty, NA, 0, - or . are missing,
// as are such alleles within a call.
func ParseGenotypes(r io.Reader, path string, delim rune) (*genotype.Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, HeaderError(path, "file is empty")
	}
	if err != nil {
		return nil, RowError(path, errLine(err), err)
	}
	for i := range header {
		header[i] = gnlib.FixUtf8(strings.TrimSpace(header[i]))
	}

	first := 1
	if len(header) > 1 {
		if _, ok := popColumns[strings.ToLower(header[1])]; ok {
			first = 2
		}
	}
	if len(header) <= first {
		return nil, HeaderError(path, "no locus columns")
	}

	res := &genotype.Dataset{Loci: header[first:]}
	seen := make(map[string]struct{}, len(res.Loci))
	for _, l := range res.Loci {
		if l == "" {
			return nil, HeaderError(path, "empty locus name")
		}
		if _, ok := seen[l]; ok {
			return nil, HeaderError(path, fmt.Sprintf("duplicate locus %q", l))
		}
		seen[l] = struct{}{}
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, RowError(path, errLine(err), err)
		}
		line, _ := cr.FieldPos(0)

		ind, err := parseRow(rec, first, res.Loci, path, line)
		if err != nil {
			return nil, err
		}
		res.Individuals = append(res.Individuals, ind)
	}
	return res, nil
}

func parseRow(
	rec []string,
	first int,
	loci []string,
	path string,
	line int,
) (genotype.Individual, error) {
	var res genotype.Individual
	res.Name = gnlib.FixUtf8(strings.TrimSpace(rec[0]))
	if res.Name == "" {
		return res, RowError(path, line, errors.New("empty individual name"))
	}
	if first == 2 {
		res.Population = gnlib.FixUtf8(strings.TrimSpace(rec[1]))
	}

	res.Calls = make([]genotype.Call, len(loci))
	for i, s := range rec[first:] {
		c, ok := ParseCall(s)
		if !ok {
			return res, CallError(path, line, loci[i], s)
		}
		res.Calls[i] = c
		res.Ploidy = max(res.Ploidy, c.Ploidy())
	}
	if res.Ploidy == 0 {
		// nothing observed, ploidy does not matter
		res.Ploidy = 2
	}
	return res, nil
}

// ParseCall parses a genotype call such as "A/B" or "120|124|124". The
// boolean is false if the call mixes separators.
func ParseCall(s string) (genotype.Call, bool) {
	s = strings.TrimSpace(s)
	if isMissing(s) {
		return genotype.MissingCall(), true
	}

	sep := "/"
	if strings.Contains(s, "|") {
		if strings.Contains(s, "/") {
			return genotype.Call{}, false
		}
		sep = "|"
	}

	alleles := strings.Split(s, sep)
	observed := 0
	for i, a := range alleles {
		a = strings.TrimSpace(a)
		if isMissing(a) {
			a = ""
		} else {
			observed++
		}
		alleles[i] = a
	}
	if observed == 0 {
		return genotype.MissingCall(), true
	}
	return genotype.NewCall(alleles...), true
}

// errLine returns the line of a CSV parsing error.
func errLine(err error) int {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return pe.Line
	}
	return 0
}

func isMissing(s string) bool {
	_, ok := missingTokens[strings.ToLower(s)]
	return ok
}
