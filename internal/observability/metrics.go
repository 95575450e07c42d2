package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Metrics holds the Prometheus counters and histograms for the report run.
type Metrics struct {
	RecordsParsed     prometheus.Counter
	RowsSkipped       prometheus.Counter
	InvalidDates      prometheus.Counter
	RecordsInScope    prometheus.Counter
	RecordsOutScope   prometheus.Counter
	SnapshotLookups   *prometheus.CounterVec // labels: result={hit,miss}
	ParseDuration     prometheus.Histogram
	AggregateDuration prometheus.Histogram
	RunDuration       prometheus.Histogram

	registry *prometheus.Registry
}

// NewMetrics creates all run metrics on a private registry. A batch job has
// nothing to scrape, so the registry is pushed (see Push) instead of served.
func NewMetrics() *Metrics {
	m := newMetrics()
	m.registry.MustRegister(
		m.RecordsParsed,
		m.RowsSkipped,
		m.InvalidDates,
		m.RecordsInScope,
		m.RecordsOutScope,
		m.SnapshotLookups,
		m.ParseDuration,
		m.AggregateDuration,
		m.RunDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering collectors, so
// parallel tests never hit "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RecordsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_report",
			Name:      "records_parsed_total",
			Help:      "Rows successfully parsed from the raw CSV archive.",
		}),
		RowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_report",
			Name:      "rows_skipped_total",
			Help:      "Malformed CSV rows dropped during parsing.",
		}),
		InvalidDates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_report",
			Name:      "invalid_dates_total",
			Help:      "Records whose begin date failed to parse.",
		}),
		RecordsInScope: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_report",
			Name:      "records_in_scope_total",
			Help:      "Enriched records inside the study's geographic boundary.",
		}),
		RecordsOutScope: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_report",
			Name:      "records_out_of_scope_total",
			Help:      "Enriched records outside the study's geographic boundary.",
		}),
		SnapshotLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storm_report",
			Name:      "snapshot_lookups_total",
			Help:      "Snapshot cache lookups by result.",
		}, []string{"result"}),
		ParseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "storm_report",
			Name:      "parse_duration_seconds",
			Help:      "Time spent decompressing and parsing the raw archive.",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300},
		}),
		AggregateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "storm_report",
			Name:      "aggregate_duration_seconds",
			Help:      "Time spent grouping and summing enriched records.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "storm_report",
			Name:      "run_duration_seconds",
			Help:      "Total wall time of the report run.",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
		}),
		registry: prometheus.NewRegistry(),
	}
}

// Push sends the run's metrics to a Pushgateway, grouped by instance. A
// no-op when gatewayURL is empty.
func (m *Metrics) Push(gatewayURL, instance string) error {
	if gatewayURL == "" {
		return nil
	}
	return push.New(gatewayURL, "storm_report").
		Gatherer(m.registry).
		Grouping("instance", instance).
		Push()
}
