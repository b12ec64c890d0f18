package catalog

import "fmt"

// Impact holds the headline business figures
type Impact struct {
	TotalAssetsMonitored  int     `json:"total_assets_monitored" yaml:"total_assets_monitored"`
	HighRiskIdentified    int     `json:"high_risk_identified" yaml:"high_risk_identified"`
	PercentageHighRisk    float64 `json:"percentage_high_risk" yaml:"percentage_high_risk"`
	PotentialSavings      int     `json:"potential_savings" yaml:"potential_savings"`
	PreventedOutages      int     `json:"prevented_outages" yaml:"prevented_outages"`
	CrewEfficiencyGain    int     `json:"crew_efficiency_gain" yaml:"crew_efficiency_gain"`
	AlertFatigueReduction int     `json:"alert_fatigue_reduction" yaml:"alert_fatigue_reduction"`
}

var BusinessImpact = Impact{
	TotalAssetsMonitored:  MonitoredAssets,
	HighRiskIdentified:    146,
	PercentageHighRisk:    1.6,
	PotentialSavings:      2300000,
	PreventedOutages:      23,
	CrewEfficiencyGain:    34,
	AlertFatigueReduction: 78,
}

// ImplementationCost covers cluster infrastructure and model development
const ImplementationCost = 680000

// CostCategory is one line of the cost-benefit breakdown
type CostCategory struct {
	Category    string `json:"category" yaml:"category"`
	Amount      int    `json:"amount" yaml:"amount"`
	Description string `json:"description" yaml:"description"`
}

var CostCategories = []CostCategory{
	{Category: "Emergency Repair Costs Avoided", Amount: 1850000, Description: "Prevented catastrophic failures"},
	{Category: "Reduced Overtime Labor", Amount: 280000, Description: "Optimized crew scheduling"},
	{Category: "Parts Inventory Optimization", Amount: 170000, Description: "Predictive parts ordering"},
	{Category: "Customer Outage Cost Reduction", Amount: 320000, Description: "Improved reliability metrics"},
	{Category: "Regulatory Compliance Savings", Amount: 95000, Description: "Avoided NERC penalties"},
}

var KeyLearnings = []string{
	"Feature calibration with domain expert input increased model accuracy by 23%",
	"Business cost framing reduced alert fatigue from 340 to 75 daily alerts",
	"Rolling window validation prevented overfitting to seasonal patterns",
	"Ensemble approach improved robustness compared to single model deployment",
	"Automated retraining pipeline maintains 96%+ accuracy despite data drift",
}

// ROIResult is the return-on-investment readout
type ROIResult struct {
	ImplementationCost int     `json:"implementation_cost" yaml:"implementation_cost"`
	AnnualSavings      int     `json:"annual_savings" yaml:"annual_savings"`
	ROIPercent         float64 `json:"roi_percent" yaml:"roi_percent"`
	PaybackMonths      float64 `json:"payback_months" yaml:"payback_months"`
	ThreeYearNPV       int     `json:"three_year_npv" yaml:"three_year_npv"`
}

// ROI computes first-year return, payback and undiscounted three-year value
func ROI(implementationCost, annualSavings int) (ROIResult, error) {
	if implementationCost <= 0 {
		return ROIResult{}, fmt.Errorf("implementation cost must be positive, got %d", implementationCost)
	}
	if annualSavings <= 0 {
		return ROIResult{}, fmt.Errorf("annual savings must be positive, got %d", annualSavings)
	}

	i, s := float64(implementationCost), float64(annualSavings)
	return ROIResult{
		ImplementationCost: implementationCost,
		AnnualSavings:      annualSavings,
		ROIPercent:         (s - i) / i * 100,
		PaybackMonths:      i / s * 12,
		ThreeYearNPV:       annualSavings*3 - implementationCost,
	}, nil
}

// DefaultROI is ROI over the published figures
func DefaultROI() ROIResult {
	r, _ := ROI(ImplementationCost, BusinessImpact.PotentialSavings)
	return r
}
