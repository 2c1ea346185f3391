package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the risk engine.
type Metrics struct {
	PredictionsTotal *prometheus.CounterVec // labels: risk_level
	PredictionErrors *prometheus.CounterVec // labels: reason={invalid_scenario,unknown_neighborhood,no_path,model_unavailable,internal}
	CorridorsScored  prometheus.Counter

	CorridorHops     prometheus.Histogram
	CalibrationShift prometheus.Histogram

	// Model collaborator metrics.
	ModelRequestDuration prometheus.Histogram
	ModelCache           *prometheus.CounterVec // labels: result={hit,miss}

	GraphNeighborhoods prometheus.Gauge
}

// NewMetrics creates and registers all engine metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.PredictionsTotal,
		m.PredictionErrors,
		m.CorridorsScored,
		m.CorridorHops,
		m.CalibrationShift,
		m.ModelRequestDuration,
		m.ModelCache,
		m.GraphNeighborhoods,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		PredictionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "winter_risk",
			Name:      "predictions_total",
			Help:      "Completed single-scenario predictions by resulting risk level.",
		}, []string{"risk_level"}),
		PredictionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "winter_risk",
			Name:      "prediction_errors_total",
			Help:      "Failed predictions by failure reason.",
		}, []string{"reason"}),
		CorridorsScored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "winter_risk",
			Name:      "corridors_scored_total",
			Help:      "Completed corridor judgments.",
		}),
		CorridorHops: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "winter_risk",
			Name:      "corridor_hops",
			Help:      "Number of neighborhoods per scored corridor.",
			Buckets:   []float64{1, 2, 3, 4, 5, 7, 10, 15, 20},
		}),
		CalibrationShift: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "winter_risk",
			Name:      "calibration_shift",
			Help:      "Signed calibration delta (calibrated minus raw probability).",
			Buckets:   []float64{-0.5, -0.3, -0.2, -0.1, -0.05, 0, 0.05, 0.1, 0.2},
		}),
		ModelRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "winter_risk",
			Name:      "model_request_duration_seconds",
			Help:      "Latency of model collaborator calls.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		ModelCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "winter_risk",
			Name:      "model_cache_total",
			Help:      "Model prediction cache lookups by result.",
		}, []string{"result"}),
		GraphNeighborhoods: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "winter_risk",
			Name:      "graph_neighborhoods",
			Help:      "Number of neighborhoods in the loaded adjacency graph.",
		}),
	}
}
