package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Fetch outcome label values.
const (
	OutcomeOK           = "ok"
	OutcomeAccessDenied = "access_denied"
	OutcomeServerError  = "server_error"
	OutcomeTooMany      = "too_many_datapoints"
	OutcomeError        = "error"
)

// Metrics holds the Prometheus counters and histograms for a download run.
type Metrics struct {
	FetchRequests     *prometheus.CounterVec // label: outcome
	RecordsDownloaded prometheus.Counter
	MeasurementsTotal prometheus.Counter

	// Retrieval strategy metrics.
	SplitSweeps   prometheus.Counter
	WindowFetches prometheus.Counter

	InstrumentDuration prometheus.Histogram
	FilesWritten       *prometheus.CounterVec // label: kind={csv,warning,readme}
}

// NewMetrics creates and registers all downloader metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FetchRequests,
		m.RecordsDownloaded,
		m.MeasurementsTotal,
		m.SplitSweeps,
		m.WindowFetches,
		m.InstrumentDuration,
		m.FilesWritten,
	)
	return m
}

// NewMetricsForTesting creates Metrics without touching the default registry
// to avoid "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chords",
			Name:      "fetch_requests_total",
			Help:      "Portal data requests by classified outcome.",
		}, []string{"outcome"}),
		RecordsDownloaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chords",
			Name:      "records_downloaded_total",
			Help:      "Total observations retrieved across all instruments.",
		}),
		MeasurementsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chords",
			Name:      "measurements_total",
			Help:      "Total individual measurement values retrieved.",
		}),
		SplitSweeps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chords",
			Name:      "split_sweeps_total",
			Help:      "Range re-splits triggered by datapoint cap responses.",
		}),
		WindowFetches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chords",
			Name:      "window_fetches_total",
			Help:      "Per-day fetches issued by the daily window walker.",
		}),
		InstrumentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "chords",
			Name:      "instrument_duration_seconds",
			Help:      "Time to fully process one instrument, fetch through file write.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		}),
		FilesWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chords",
			Name:      "files_written_total",
			Help:      "Output artifacts written by kind.",
		}, []string{"kind"}),
	}
}
