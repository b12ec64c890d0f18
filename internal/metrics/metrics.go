package metrics

import (
	"time"
)

// RecordGeneration records a successful generation and its per-level output
func (r *Registry) RecordGeneration(duration time.Duration, byRisk map[string]int, meanProb float64) {
	r.GenerationsTotal.WithLabelValues("success").Inc()
	r.GenerationDuration.Observe(duration.Seconds())
	for level, n := range byRisk {
		r.AssetsGeneratedTotal.WithLabelValues(level).Add(float64(n))
	}
	r.LastFailureProbMean.Set(meanProb)
}

// RecordGenerationFailure records a rejected or failed generation.
// result is "invalid" for caller errors and "error" otherwise.
func (r *Registry) RecordGenerationFailure(result string) {
	r.GenerationsTotal.WithLabelValues(result).Inc()
}

// SessionOpened tracks a newly opened session
func (r *Registry) SessionOpened() {
	r.SessionsOpenedTotal.Inc()
	r.SessionsActive.Inc()
}

// SessionClosed tracks a discarded session
func (r *Registry) SessionClosed() {
	r.SessionsActive.Dec()
}

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}
