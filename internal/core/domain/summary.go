package domain

// Summary aggregates a fleet for headers, stats and charts
type Summary struct {
	Total                  int               `json:"total"`
	ByRisk                 map[RiskLevel]int `json:"by_risk"`
	ByType                 map[string]int    `json:"by_type"`
	ByLocation             map[string]int    `json:"by_location"`
	MeanFailureProbability float64           `json:"mean_failure_probability"`
	TotalMaintenanceCost   int               `json:"total_maintenance_cost"`
	TotalReplacementCost   int               `json:"total_replacement_cost"`
	SoonestFailure         *AssetRecord      `json:"soonest_failure,omitempty"`
}

// Summarize computes a Summary over assets
func Summarize(assets []AssetRecord) Summary {
	s := Summary{
		Total:      len(assets),
		ByRisk:     make(map[RiskLevel]int, 3),
		ByType:     make(map[string]int, len(AssetTypes)),
		ByLocation: make(map[string]int, len(Locations)),
	}

	// Every level appears so charts always have three bars
	for _, level := range AllRiskLevels() {
		s.ByRisk[level] = 0
	}

	if len(assets) == 0 {
		return s
	}

	var probSum float64
	for i, a := range assets {
		s.ByRisk[a.RiskLevel]++
		s.ByType[a.Type]++
		s.ByLocation[a.Location]++
		probSum += a.FailureProbability
		s.TotalMaintenanceCost += a.MaintenanceCost
		s.TotalReplacementCost += a.ReplacementCost

		if s.SoonestFailure == nil || a.DaysToFailure < s.SoonestFailure.DaysToFailure {
			s.SoonestFailure = &assets[i]
		}
	}
	s.MeanFailureProbability = probSum / float64(len(assets))

	return s
}

// AtRisk returns the number of CRITICAL and HIGH records
func (s Summary) AtRisk() int {
	return s.ByRisk[RiskCritical] + s.ByRisk[RiskHigh]
}

// Share returns the fraction of records at the given level
func (s Summary) Share(level RiskLevel) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.ByRisk[level]) / float64(s.Total)
}
