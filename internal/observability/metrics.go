package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// ingest and merge pipeline.
type Metrics struct {
	// Per-source fetch metrics.
	FetchTotal    *prometheus.CounterVec   // labels: source, outcome={success,error}
	FetchDuration *prometheus.HistogramVec // labels: source
	SourceEvents  *prometheus.GaugeVec     // labels: source

	// Merge engine metrics.
	FeedSize            prometheus.Gauge
	MergeRecomputes     prometheus.Counter
	CriticalAlertActive prometheus.Gauge

	// Live-push and community report metrics.
	EventsPushed       prometheus.Counter
	PushDropped        prometheus.Counter
	ReportsSubmitted   prometheus.Counter
	ReportsApproved    prometheus.Counter
	ReportDecodeErrors prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "begdar",
			Name:      "fetch_total",
			Help:      "Source fetch cycles by source and outcome.",
		}, []string{"source", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "begdar",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of a source fetch-and-adapt cycle.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"source"}),
		SourceEvents: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "begdar",
			Name:      "source_events",
			Help:      "Events contributed by each source's current batch.",
		}, []string{"source"}),
		FeedSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "begdar",
			Name:      "feed_size",
			Help:      "Total events in the merged feed.",
		}),
		MergeRecomputes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "begdar",
			Name:      "merge_recomputes_total",
			Help:      "Total merge recomputations (batch replaces and live pushes).",
		}),
		CriticalAlertActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "begdar",
			Name:      "critical_alert_active",
			Help:      "1 when the merged feed contains a critical-severity event.",
		}),
		EventsPushed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "begdar",
			Name:      "events_pushed_total",
			Help:      "Events delivered through the live push path.",
		}),
		PushDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "begdar",
			Name:      "push_dropped_total",
			Help:      "Oldest pushed events dropped because the held list hit its cap.",
		}),
		ReportsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "begdar",
			Name:      "reports_submitted_total",
			Help:      "Community reports accepted at submission.",
		}),
		ReportsApproved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "begdar",
			Name:      "reports_approved_total",
			Help:      "Community reports approved into the merged feed.",
		}),
		ReportDecodeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "begdar",
			Name:      "report_decode_errors_total",
			Help:      "Report stream messages that failed to decode.",
		}),
	}

	prometheus.MustRegister(
		m.FetchTotal,
		m.FetchDuration,
		m.SourceEvents,
		m.FeedSize,
		m.MergeRecomputes,
		m.CriticalAlertActive,
		m.EventsPushed,
		m.PushDropped,
		m.ReportsSubmitted,
		m.ReportsApproved,
		m.ReportDecodeErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FetchTotal:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "begdar", Name: "fetch_total"}, []string{"source", "outcome"}),
		FetchDuration:       prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "begdar", Name: "fetch_duration_seconds"}, []string{"source"}),
		SourceEvents:        prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: "begdar", Name: "source_events"}, []string{"source"}),
		FeedSize:            prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "begdar", Name: "feed_size"}),
		MergeRecomputes:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "begdar", Name: "merge_recomputes_total"}),
		CriticalAlertActive: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "begdar", Name: "critical_alert_active"}),
		EventsPushed:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "begdar", Name: "events_pushed_total"}),
		PushDropped:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "begdar", Name: "push_dropped_total"}),
		ReportsSubmitted:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "begdar", Name: "reports_submitted_total"}),
		ReportsApproved:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "begdar", Name: "reports_approved_total"}),
		ReportDecodeErrors:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "begdar", Name: "report_decode_errors_total"}),
	}
}
