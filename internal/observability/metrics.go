package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "emissions_dashboard"

// Metrics holds the Prometheus collectors for loading and rendering.
type Metrics struct {
	// Loader metrics, labeled by table={sector,fuel}.
	RowsLoaded    *prometheus.CounterVec
	RowsSkipped   *prometheus.CounterVec
	LoadDuration  *prometheus.HistogramVec
	SessionLoaded prometheus.Gauge

	// Interaction metrics.
	FramesRendered  *prometheus.CounterVec   // labels: kind={sector,fuel,risk}
	EmptyFrames     *prometheus.CounterVec   // labels: kind
	Recommendations *prometheus.CounterVec   // labels: outcome={found,none,invalid}
	RiskSamples     prometheus.Counter       // states drawn by the risk model
	ComputeDuration *prometheus.HistogramVec // labels: operation

	// Render sink metrics.
	SinkPublished prometheus.Counter
	SinkErrors    prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewUnregisteredMetrics creates Metrics outside the default registry, for
// one-shot commands and tests that construct Metrics more than once.
func NewUnregisteredMetrics() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_loaded_total",
			Help:      "State rows kept from source tables.",
		}, []string{"table"}),
		RowsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_skipped_total",
			Help:      "Source rows dropped because the State cell is not a US state.",
		}, []string{"table"}),
		LoadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Time to open and parse a source table.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"table"}),
		SessionLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "session_loaded",
			Help:      "1 once both source tables are loaded, 0 otherwise.",
		}),
		FramesRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_rendered_total",
			Help:      "Map frames produced, by kind.",
		}, []string{"kind"}),
		EmptyFrames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "empty_frames_total",
			Help:      "Map frames produced with no data, by kind.",
		}, []string{"kind"}),
		Recommendations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Recommendation requests by outcome.",
		}, []string{"outcome"}),
		RiskSamples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "risk_samples_total",
			Help:      "State risk records drawn from the risk model.",
		}),
		ComputeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "compute_duration_seconds",
			Help:      "Time to recompute a dashboard view.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"operation"}),
		SinkPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sink_frames_published_total",
			Help:      "Map frames delivered to the render sink.",
		}),
		SinkErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sink_errors_total",
			Help:      "Failed render sink publishes.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.RowsLoaded,
		m.RowsSkipped,
		m.LoadDuration,
		m.SessionLoaded,
		m.FramesRendered,
		m.EmptyFrames,
		m.Recommendations,
		m.RiskSamples,
		m.ComputeDuration,
		m.SinkPublished,
		m.SinkErrors,
	}
}
