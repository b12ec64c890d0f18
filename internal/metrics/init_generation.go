package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGenerationMetrics() {
	r.GenerationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridrisk_generations_total",
			Help: "Total number of fleet generation calls",
		},
		[]string{"result"}, // success, invalid, error
	)

	r.GenerationDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gridrisk_generation_duration_seconds",
			Help:    "Duration of fleet generation in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	r.AssetsGeneratedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridrisk_assets_generated_total",
			Help: "Total number of generated asset records by risk level",
		},
		[]string{"risk_level"},
	)

	r.LastFailureProbMean = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "gridrisk_last_mean_failure_probability",
			Help: "Mean failure probability of the most recent generation",
		},
	)
}

func (r *Registry) initSessionMetrics() {
	r.SessionsActive = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "gridrisk_sessions_active",
			Help: "Number of open viewer sessions",
		},
	)

	r.SessionsOpenedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "gridrisk_sessions_opened_total",
			Help: "Total number of sessions opened",
		},
	)
}

func (r *Registry) initHTTPMetrics() {
	r.HTTPRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridrisk_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	r.HTTPRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gridrisk_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
}
