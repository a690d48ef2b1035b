package genotype

// State is the homozygosity state of a call.
type State int

const (
	// Missing calls are excluded from the likelihood.
	Missing State = iota
	// Homozygous calls have all allele copies identical.
	Homozygous
	// Heterozygous calls carry at least two distinct alleles.
	Heterozygous
)

var stateNames = map[State]string{
	Missing:      "missing",
	Homozygous:   "homozygous",
	Heterozygous: "heterozygous",
}

// String implements fmt.Stringer.
func (s State) String() string {
	if res, ok := stateNames[s]; ok {
		return res
	}
	return "unknown"
}

// Classify reduces a genotype call to its homozygosity state.
// A call is Missing if it is absent, has fewer than two allele copies,
// or any of its alleles was not observed.
func Classify(c Call) State {
	if c.Missing || len(c.Alleles) < 2 {
		return Missing
	}

	first := c.Alleles[0]
	if first == "" {
		return Missing
	}

	res := Homozygous
	for _, a := range c.Alleles[1:] {
		if a == "" {
			return Missing
		}
		if a != first {
			res = Heterozygous
		}
	}
	return res
}

// States classifies every call of an individual.
func States(ind *Individual) []State {
	res := make([]State, len(ind.Calls))
	for i := range ind.Calls {
		res[i] = Classify(ind.Calls[i])
	}
	return res
}
