package inbreeding

import (
	"fmt"
	"strconv"
)

// Result is the outcome of estimation for one individual.
type Result struct {
	// Index is the position of the individual in the dataset.
	Index int
	// Key identifies the individual in the output.
	Key string
	// Name is the individual's name in the dataset.
	Name string
	// Population is the population whose frequencies were used.
	Population string
	// Type tells which of Samples, Func or MLE is set.
	Type ResultType

	// Samples are values of F drawn from the grid density.
	Samples []float64
	// Func is the likelihood of F.
	Func *Likelihood
	// MLE is the maximum-likelihood estimate of F.
	MLE float64

	// Loci is the number of loci contributing to the likelihood.
	Loci int
	// Skipped is the number of missing or undefined loci.
	Skipped int

	// Degenerate is true if the likelihood is zero for every F.
	Degenerate bool
	// Err explains why the result is degenerate.
	Err error
}

// Value returns a short human readable form of the result.
func (r *Result) Value() string {
	if r.Degenerate {
		return "NA"
	}
	switch r.Type {
	case ResultEstimate:
		return strconv.FormatFloat(r.MLE, 'f', -1, 64)
	case ResultSample:
		return fmt.Sprintf("%d values", len(r.Samples))
	default:
		return fmt.Sprintf("likelihood over %d loci", r.Loci)
	}
}

// Results are per-individual results in the order of the input.
type Results struct {
	Type  ResultType
	Seed  uint64
	Grid  int
	Items []Result

	index map[string]int
}

// Keys returns result keys in input order.
func (r *Results) Keys() []string {
	res := make([]string, len(r.Items))
	for i := range r.Items {
		res[i] = r.Items[i].Key
	}
	return res
}

// Get returns the result for a key.
func (r *Results) Get(key string) (*Result, bool) {
	if r.index == nil {
		r.index = make(map[string]int, len(r.Items))
		for i := range r.Items {
			r.index[r.Items[i].Key] = i
		}
	}
	idx, ok := r.index[key]
	if !ok {
		return nil, false
	}
	return &r.Items[idx], true
}

// Degenerate returns keys of individuals with degenerate likelihoods.
func (r *Results) Degenerate() []string {
	var res []string
	for i := range r.Items {
		if r.Items[i].Degenerate {
			res = append(res, r.Items[i].Key)
		}
	}
	return res
}

// genericLabels returns positional labels zero-padded to a common width.
func genericLabels(n int) []string {
	width := len(strconv.Itoa(n))
	res := make([]string, n)
	for i := range res {
		res[i] = fmt.Sprintf("%0*d", width, i+1)
	}
	return res
}
