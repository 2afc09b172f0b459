// Package metrics exports pipeline counters as Prometheus metrics.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ssargent/calltrace/pkg/calllog"
)

const (
	outcomeDecodeFailed    = "decode_failed"
	outcomeNotCallRecord   = "not_call_record"
	outcomeMissingIdentity = "missing_identity"
	outcomeDuplicate       = "duplicate"
	outcomeEmitted         = "emitted"
)

// Metrics holds all Prometheus metrics for a decode run
type Metrics struct {
	registry *prometheus.Registry

	// Block metrics
	rangesTotal   prometheus.Counter
	blocksTotal   *prometheus.CounterVec
	recordsTotal  *prometheus.CounterVec
	lastRunRanges prometheus.Gauge

	// Record field metrics
	durationSeconds prometheus.Histogram
}

// NewMetrics creates all metrics on a fresh registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		registry: reg,

		rangesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "calltrace_ranges_total",
				Help: "Total number of located record blocks",
			},
		),

		blocksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calltrace_blocks_total",
				Help: "Total number of record blocks by outcome",
			},
			[]string{"outcome"},
		),

		recordsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calltrace_records_total",
				Help: "Total number of emitted call records",
			},
			[]string{"service", "direction"},
		),

		lastRunRanges: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "calltrace_last_run_ranges",
				Help: "Number of blocks located by the most recent run",
			},
		),

		durationSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "calltrace_call_duration_seconds",
				Help:    "Duration of emitted calls in seconds",
				Buckets: []float64{0, 10, 30, 60, 300, 900, 1800, 3600, 7200},
			},
		),
	}

	return m
}

// Registry returns the registry the metrics are registered on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes every metric in the text exposition format, for the
// node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

func (m *Metrics) RunStarted(ranges int) {
	m.rangesTotal.Add(float64(ranges))
	m.lastRunRanges.Set(float64(ranges))
}

func (m *Metrics) DecodeFailed(int, error) {
	m.blocksTotal.WithLabelValues(outcomeDecodeFailed).Inc()
}

func (m *Metrics) NotCallRecord(int, error) {
	m.blocksTotal.WithLabelValues(outcomeNotCallRecord).Inc()
}

func (m *Metrics) MissingIdentity(int) {
	m.blocksTotal.WithLabelValues(outcomeMissingIdentity).Inc()
}

func (m *Metrics) Duplicate(int, string) {
	m.blocksTotal.WithLabelValues(outcomeDuplicate).Inc()
}

func (m *Metrics) Emitted(rec *calllog.CallRecord) {
	m.blocksTotal.WithLabelValues(outcomeEmitted).Inc()
	m.recordsTotal.WithLabelValues(string(rec.ServiceType), string(rec.Direction)).Inc()
	if rec.DurationSeconds != nil {
		m.durationSeconds.Observe(*rec.DurationSeconds)
	}
}

func (m *Metrics) RunCompleted(calllog.Stats) {}

var _ calllog.Sink = (*Metrics)(nil)
