// Package iometrics collects Prometheus metrics of estimation runs and
// writes them in the text exposition format, so a node exporter can pick
// them up after a batch job.
package iometrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vmikk/adegenet/pkg/inbreeding"
)

const namespace = "adegenet"

// Status labels of processed individuals.
const (
	StatusOK         = "ok"
	StatusDegenerate = "degenerate"
)

// Metrics implements inbreeding.Observer on a private registry.
type Metrics struct {
	reg         *prometheus.Registry
	individuals *prometheus.CounterVec
	duration    prometheus.Histogram
	loci        *prometheus.CounterVec
}

// New registers metrics on a new registry.
func New() (*Metrics, error) {
	res := &Metrics{
		reg: prometheus.NewRegistry(),
		individuals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "inbreeding",
				Name:      "individuals_total",
				Help:      "Individuals processed, by outcome.",
			},
			[]string{"status"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "inbreeding",
				Name:      "individual_duration_seconds",
				Help:      "Time spent on one individual.",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
		),
		loci: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "inbreeding",
				Name:      "loci_total",
				Help:      "Loci seen across individuals, by usage.",
			},
			[]string{"usage"},
		),
	}

	collectors := []prometheus.Collector{
		res.individuals, res.duration, res.loci,
	}
	for _, c := range collectors {
		if err := res.reg.Register(c); err != nil {
			return nil, RegisterError(err)
		}
	}
	return res, nil
}

// Registry returns the registry holding the metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// Observe implements inbreeding.Observer.
func (m *Metrics) Observe(res *inbreeding.Result, elapsed time.Duration) {
	status := StatusOK
	if res.Degenerate {
		status = StatusDegenerate
	}
	m.individuals.WithLabelValues(status).Inc()
	m.duration.Observe(elapsed.Seconds())
	m.loci.WithLabelValues("used").Add(float64(res.Loci))
	m.loci.WithLabelValues("skipped").Add(float64(res.Skipped))
}

// WriteTextfile writes current values of metrics to path.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return WriteError(path, err)
	}
	return nil
}
