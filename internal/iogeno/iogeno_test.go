package iogeno_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmikk/adegenet/internal/iogeno"
	"github.com/vmikk/adegenet/pkg/errcode"
	"github.com/vmikk/adegenet/pkg/genotype"
)

func errCode(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	return gnErr.Code
}

func TestParseCall(t *testing.T) {
	tests := []struct {
		in      string
		alleles []string
		missing bool
		ok      bool
	}{
		{"A/B", []string{"A", "B"}, false, true},
		{" 120 / 124 ", []string{"120", "124"}, false, true},
		{"1|2|2|3", []string{"1", "2", "2", "3"}, false, true},
		{"A/NA", []string{"A", ""}, false, true},
		{"A/.", []string{"A", ""}, false, true},
		{"NA/NA", nil, true, true},
		{"", nil, true, true},
		{"NA", nil, true, true},
		{"na", nil, true, true},
		{"0", nil, true, true},
		{"-", nil, true, true},
		{"A", []string{"A"}, false, true},
		{"A/B|C", nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, ok := iogeno.ParseCall(tt.in)
			assert.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.missing, c.Missing)
			assert.Equal(t, tt.alleles, c.Alleles)
		})
	}
}

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, '\t', iogeno.DetectDelimiter("data/geno.tsv"))
	assert.Equal(t, '\t', iogeno.DetectDelimiter("geno.TXT"))
	assert.Equal(t, ',', iogeno.DetectDelimiter("geno.csv"))
	assert.Equal(t, ',', iogeno.DetectDelimiter("geno"))
}

func TestParseGenotypes(t *testing.T) {
	data := `# microsatellites
ind,pop,L1,L2,L3
a,P1,120/124,A/A,NA
b,P1,120/120,A/B,1/2
c,P2,124/128/128/130,B/B/B/B,1/2/NA/2
`
	ds, err := iogeno.ParseGenotypes(strings.NewReader(data), "test.csv", ',')
	require.NoError(t, err)
	require.NoError(t, ds.Validate())

	assert.Equal(t, []string{"L1", "L2", "L3"}, ds.Loci)
	require.Len(t, ds.Individuals, 3)

	a := ds.Individuals[0]
	assert.Equal(t, "a", a.Name)
	assert.Equal(t, "P1", a.Population)
	assert.Equal(t, 2, a.Ploidy)
	assert.True(t, a.Calls[2].Missing)

	c := ds.Individuals[2]
	assert.Equal(t, 4, c.Ploidy)
	assert.Equal(t, "P2", c.Population)
	assert.Equal(t, []genotype.State{
		genotype.Heterozygous, genotype.Homozygous, genotype.Missing,
	}, genotype.States(&c))
}

func TestParseGenotypesMixedPloidy(t *testing.T) {
	data := "ind,L1,L2\na,A/B,A/B/B\n"
	ds, err := iogeno.ParseGenotypes(strings.NewReader(data), "test.csv", ',')
	require.NoError(t, err)
	assert.Equal(t, errcode.DatasetCallPloidyError, errCode(t, ds.Validate()))
}

func TestParseGenotypesNoPopulation(t *testing.T) {
	data := "name\tL1\tL2\nx\tA/B\tC/C\ny\tB/B\t\n"
	ds, err := iogeno.ParseGenotypes(strings.NewReader(data), "test.tsv", '\t')
	require.NoError(t, err)
	assert.Equal(t, []string{"L1", "L2"}, ds.Loci)
	require.Len(t, ds.Individuals, 2)
	assert.Empty(t, ds.Individuals[0].Population)
	assert.True(t, ds.Individuals[1].Calls[1].Missing)
	assert.Equal(t, genotype.DefaultPopulation,
		genotype.PopulationOf(&ds.Individuals[0], nil))
}

func TestParseGenotypesErrors(t *testing.T) {
	tests := []struct {
		msg  string
		data string
		code gn.ErrorCode
	}{
		{"empty", "", errcode.GenotypeHeaderError},
		{"no loci", "ind,pop\na,P1\n", errcode.GenotypeHeaderError},
		{"duplicate locus", "ind,L1,L1\na,A/A,A/B\n", errcode.GenotypeHeaderError},
		{"short row", "ind,L1,L2\na,A/A\n", errcode.GenotypeRowError},
		{"empty name", "ind,L1\n,A/A\n", errcode.GenotypeRowError},
		{"bad call", "ind,L1\na,A/B|C\n", errcode.GenotypeCallError},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			_, err := iogeno.ParseGenotypes(strings.NewReader(tt.data), "x.csv", ',')
			assert.Equal(t, tt.code, errCode(t, err))
		})
	}
}

func TestReadGenotypes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "geno.tsv")
	require.NoError(t, os.WriteFile(path,
		[]byte("ind\tL1\na\tA/B\nb\tA/A\n"), 0644))

	ds, err := iogeno.ReadGenotypes(path, 0)
	require.NoError(t, err)
	assert.Len(t, ds.Individuals, 2)

	_, err = iogeno.ReadGenotypes(filepath.Join(dir, "absent.csv"), 0)
	assert.Equal(t, errcode.ReadFileError, errCode(t, err))
}

func TestParseStrata(t *testing.T) {
	data := `north:
  - a
  - b
south:
  - c
  - 101
`
	g, err := iogeno.ParseStrata(strings.NewReader(data), "strata.yaml")
	require.NoError(t, err)
	assert.Equal(t, genotype.MapGrouper{
		"a": "north", "b": "north", "c": "south", "101": "south",
	}, g)

	pop, ok := g.Population("c")
	assert.True(t, ok)
	assert.Equal(t, "south", pop)
}

func TestParseStrataErrors(t *testing.T) {
	tests := []struct {
		msg  string
		data string
	}{
		{"empty", ""},
		{"not a mapping", "- a\n- b\n"},
		{"two populations", "p1: [a]\np2: [a]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			_, err := iogeno.ParseStrata(strings.NewReader(tt.data), "s.yaml")
			assert.Equal(t, errcode.StrataFileError, errCode(t, err))
		})
	}
}

func TestParseFrequencies(t *testing.T) {
	data := `P1:
  L1:
    A: 0.7
    B: 0.3
  L3:
    X: 2
    Y: 2
  L9:
    Z: 1
P2:
  L2:
    C: 1
`
	tbls, err := iogeno.ParseFrequencies(strings.NewReader(data), "f.yaml",
		[]string{"L1", "L2", "L3"})
	require.NoError(t, err)
	require.Len(t, tbls, 2)

	p1 := tbls["P1"]
	require.NotNil(t, p1)
	assert.Equal(t, 3, p1.LociNum())
	assert.True(t, p1.Defined(0))
	assert.False(t, p1.Defined(1))
	assert.True(t, p1.Defined(2))

	f, ok := p1.Frequency(2, "X")
	assert.True(t, ok)
	assert.InDelta(t, 0.5, f, 1e-12)

	hw, ok := p1.Homozygosity(0, 2)
	assert.True(t, ok)
	assert.InDelta(t, 0.58, hw, 1e-12)

	hw, ok = tbls["P2"].Homozygosity(1, 2)
	assert.True(t, ok)
	assert.Equal(t, 1.0, hw)
}

func TestParseFrequenciesErrors(t *testing.T) {
	tests := []struct {
		msg  string
		data string
	}{
		{"empty", ""},
		{"negative", "P1:\n  L1:\n    A: -0.1\n"},
		{"not numbers", "P1:\n  L1:\n    A: many\n"},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			_, err := iogeno.ParseFrequencies(strings.NewReader(tt.data), "f.yaml",
				[]string{"L1"})
			assert.Equal(t, errcode.FrequencyFileError, errCode(t, err))
		})
	}
}
