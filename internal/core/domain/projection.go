package domain

import "math"

// Sampling parameters for a generated fleet. They are fixed reference
// values, not calibrated against field data.
const (
	FailureAlpha      = 2.0
	FailureBeta       = 10.0
	MeanDaysToFailure = 45.0
)

// Inclusive ranges for the uniformly drawn fields
const (
	MinMaintenanceCost = 5000
	MaxMaintenanceCost = 85000

	MinReplacementCost = 50000
	MaxReplacementCost = 1200000

	MinCriticality = 0.1
	MaxCriticality = 1.0

	MinDaysSinceMaintenance = 30
	MaxDaysSinceMaintenance = 800
)

// ProjectDaysToFailure scales an exponential time-to-event sample by the
// complement of the failure probability. The result is floored and never
// drops below one day.
func ProjectDaysToFailure(sample, p float64) int {
	days := math.Floor(sample * (1 - p))
	if math.IsNaN(days) || days < 1 {
		return 1
	}
	if days > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(days)
}

// ClampProbability keeps a drawn probability inside [0, 1)
func ClampProbability(p float64) float64 {
	switch {
	case math.IsNaN(p) || p < 0:
		return 0
	case p >= 1:
		return math.Nextafter(1, 0)
	}
	return p
}
