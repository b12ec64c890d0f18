package domain

import (
	"fmt"
	"strings"
)

// RiskLevel is the three-tier bucket derived from a failure probability
type RiskLevel string

const (
	RiskCritical RiskLevel = "CRITICAL"
	RiskHigh     RiskLevel = "HIGH"
	RiskMedium   RiskLevel = "MEDIUM"
)

// Classification thresholds. A probability exactly on a threshold
// falls into the lower bucket.
const (
	CriticalThreshold = 0.15
	HighThreshold     = 0.08
)

// ClassifyRisk maps a failure probability to its risk level
func ClassifyRisk(p float64) RiskLevel {
	switch {
	case p > CriticalThreshold:
		return RiskCritical
	case p > HighThreshold:
		return RiskHigh
	default:
		return RiskMedium
	}
}

// AllRiskLevels returns every level, most severe first
func AllRiskLevels() []RiskLevel {
	return []RiskLevel{RiskCritical, RiskHigh, RiskMedium}
}

// ParseRiskLevel converts a label like "critical" or "HIGH" to a RiskLevel
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch RiskLevel(strings.ToUpper(strings.TrimSpace(s))) {
	case RiskCritical:
		return RiskCritical, nil
	case RiskHigh:
		return RiskHigh, nil
	case RiskMedium:
		return RiskMedium, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRiskLevel, s)
}

// ParseRiskLevels parses a list of labels, ignoring blanks and duplicates
func ParseRiskLevels(labels []string) ([]RiskLevel, error) {
	seen := make(map[RiskLevel]bool)
	var levels []RiskLevel
	for _, label := range labels {
		for _, part := range strings.Split(label, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			level, err := ParseRiskLevel(part)
			if err != nil {
				return nil, err
			}
			if !seen[level] {
				seen[level] = true
				levels = append(levels, level)
			}
		}
	}
	return levels, nil
}

// Severity orders levels for sorting; higher is worse
func (r RiskLevel) Severity() int {
	switch r {
	case RiskCritical:
		return 3
	case RiskHigh:
		return 2
	case RiskMedium:
		return 1
	}
	return 0
}

// Guidance is the short action hint shown next to each level
func (r RiskLevel) Guidance() string {
	switch r {
	case RiskCritical:
		return "Immediate action required"
	case RiskHigh:
		return "Schedule within 30 days"
	case RiskMedium:
		return "Routine monitoring"
	}
	return ""
}

// Color is the hex colour used for this level in charts and cards
func (r RiskLevel) Color() string {
	switch r {
	case RiskCritical:
		return "#ff4757"
	case RiskHigh:
		return "#ffa502"
	case RiskMedium:
		return "#2ed573"
	}
	return "#70a1ff"
}

func (r RiskLevel) String() string {
	return string(r)
}
