package iometrics_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmikk/adegenet/internal/iometrics"
	"github.com/vmikk/adegenet/pkg/errcode"
	"github.com/vmikk/adegenet/pkg/inbreeding"
)

var _ inbreeding.Observer = (*iometrics.Metrics)(nil)

func observe(m *iometrics.Metrics) {
	m.Observe(&inbreeding.Result{Loci: 10, Skipped: 2}, 2*time.Millisecond)
	m.Observe(&inbreeding.Result{Loci: 8, Skipped: 4}, time.Millisecond)
	m.Observe(&inbreeding.Result{Loci: 3, Degenerate: true}, time.Millisecond)
}

func TestObserve(t *testing.T) {
	m, err := iometrics.New()
	require.NoError(t, err)
	observe(m)

	expected := `
# HELP adegenet_inbreeding_individuals_total Individuals processed, by outcome.
# TYPE adegenet_inbreeding_individuals_total counter
adegenet_inbreeding_individuals_total{status="degenerate"} 1
adegenet_inbreeding_individuals_total{status="ok"} 2
# HELP adegenet_inbreeding_loci_total Loci seen across individuals, by usage.
# TYPE adegenet_inbreeding_loci_total counter
adegenet_inbreeding_loci_total{usage="skipped"} 6
adegenet_inbreeding_loci_total{usage="used"} 21
`
	err = testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"adegenet_inbreeding_individuals_total",
		"adegenet_inbreeding_loci_total",
	)
	assert.NoError(t, err)

	n, err := testutil.GatherAndCount(m.Registry(),
		"adegenet_inbreeding_individual_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestWriteTextfile(t *testing.T) {
	m, err := iometrics.New()
	require.NoError(t, err)
	observe(m)

	path := filepath.Join(t.TempDir(), "adegenet.prom")
	require.NoError(t, m.WriteTextfile(path))

	bs, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(bs),
		`adegenet_inbreeding_individuals_total{status="ok"} 2`)
	assert.Contains(t, string(bs),
		"adegenet_inbreeding_individual_duration_seconds_count 3")
}

func TestWriteTextfileError(t *testing.T) {
	m, err := iometrics.New()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "missing", "adegenet.prom")
	err = m.WriteTextfile(path)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.MetricsWriteError, gnErr.Code)
}
