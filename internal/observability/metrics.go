package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "region_sentiment"

// Metrics holds the Prometheus counters, histograms, and gauges for analysis runs.
type Metrics struct {
	RunsTotal               *prometheus.CounterVec // labels: outcome={success,error,publish_error}
	RecordsClustered        prometheus.Counter
	RecordsUnknownSentiment prometheus.Counter
	RegionsReported         prometheus.Histogram
	RegionsLoaded           prometheus.Gauge
	RunDuration             prometheus.Histogram

	ReportCache   *prometheus.CounterVec // labels: result={hit,miss}
	PublishErrors prometheus.Counter
}

func newMetrics() *Metrics {
	return &Metrics{
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Analysis runs by outcome.",
		}, []string{"outcome"}),
		RecordsClustered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_clustered_total",
			Help:      "Records assigned to a region.",
		}),
		RecordsUnknownSentiment: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_unknown_sentiment_total",
			Help:      "Records without any scored word.",
		}),
		RegionsReported: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "regions_reported",
			Help:      "Regions with at least one record per run.",
			Buckets:   []float64{0, 1, 5, 10, 20, 30, 40, 50, 60},
		}),
		RegionsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "regions_loaded",
			Help:      "Regions with a computed center.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete load-cluster-aggregate-publish run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		ReportCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_cache_total",
			Help:      "Report cache lookups by result.",
		}, []string{"result"}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Failed report publish attempts, retries included.",
		}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RunsTotal,
		m.RecordsClustered,
		m.RecordsUnknownSentiment,
		m.RegionsReported,
		m.RegionsLoaded,
		m.RunDuration,
		m.ReportCache,
		m.PublishErrors,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
