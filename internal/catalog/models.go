package catalog

// ModelScore holds the published evaluation numbers for one model
type ModelScore struct {
	Name      string  `json:"name" yaml:"name"`
	Precision float64 `json:"precision" yaml:"precision"`
	Recall    float64 `json:"recall" yaml:"recall"`
	F1        float64 `json:"f1_score" yaml:"f1_score"`
	Accuracy  float64 `json:"accuracy" yaml:"accuracy"`
}

var ModelPerformance = []ModelScore{
	{Name: "XGBoost Ensemble", Precision: 0.94, Recall: 1.00, F1: 0.97, Accuracy: 0.96},
	{Name: "TensorFlow Neural Net", Precision: 0.91, Recall: 0.98, F1: 0.94, Accuracy: 0.93},
	{Name: "scikit-learn Random Forest", Precision: 0.89, Recall: 0.96, F1: 0.92, Accuracy: 0.91},
}

// FeatureGroup is one category of model inputs
type FeatureGroup struct {
	Category string   `json:"category" yaml:"category"`
	Features []string `json:"features" yaml:"features"`
}

var FeatureGroups = []FeatureGroup{
	{
		Category: "Electrical Parameters",
		Features: []string{
			"Voltage THD (%)", "Current Unbalance (%)", "Power Factor", "Load Factor (%)",
			"Harmonics 3rd/5th/7th", "Neutral Current (A)", "Insulation Resistance (MΩ)",
		},
	},
	{
		Category: "Thermal Characteristics",
		Features: []string{
			"Operating Temperature (°C)", "Temperature Rise Rate (°C/hr)", "Hot Spot Temperature",
			"Ambient Temperature Delta", "Cooling System Efficiency (%)", "Oil Temperature (transformers)",
		},
	},
	{
		Category: "Mechanical Indicators",
		Features: []string{
			"Vibration Level (mm/s)", "Contact Resistance (μΩ)", "Operating Time (ms)",
			"SF6 Gas Pressure (bar)", "Mechanism Travel Time", "Contact Wear Pattern",
		},
	},
	{
		Category: "Environmental Factors",
		Features: []string{
			"Humidity Level (%)", "Contamination Index", "UV Exposure Hours",
			"Salt Deposit Density", "Wind Loading Factor", "Seismic Activity Level",
		},
	},
	{
		Category: "Operational History",
		Features: []string{
			"Fault Count (last 12 months)", "Operating Cycles", "Maintenance Intervals",
			"Load History Variance", "Emergency Operations", "Manufacturer Age (years)",
		},
	},
}

// RetrainingPipeline is the daily retraining flow
var RetrainingPipeline = []Step{
	{Name: "Data Ingestion", Description: "Collect 24-hour SCADA/sensor data from 9,247 assets"},
	{Name: "Feature Engineering", Description: "Calculate rolling statistics, anomaly scores, trend analysis"},
	{Name: "Model Training", Description: "Retrain ensemble models with new data + historical context"},
	{Name: "Validation", Description: "Rolling window validation with time-series cross-validation"},
	{Name: "Deployment", Description: "A/B test new models, gradual rollout to production"},
	{Name: "Monitoring", Description: "Track prediction accuracy, drift detection, business impact"},
}

var ModelMonitoring = []Metric{
	{Label: "Model Drift Score", Value: "0.03", Delta: "-0.01"},
	{Label: "Prediction Latency", Value: "47ms", Delta: "-3ms"},
	{Label: "False Positive Rate", Value: "3.2%", Delta: "-0.8%"},
	{Label: "Feature Stability", Value: "98.7%", Delta: "+0.3%"},
	{Label: "Data Quality Score", Value: "99.1%", Delta: "+0.2%"},
	{Label: "Model Confidence", Value: "96.4%", Delta: "+1.1%"},
}

// Importance is one factor's share of a risk score
type Importance struct {
	Feature string  `json:"feature" yaml:"feature"`
	Weight  float64 `json:"weight" yaml:"weight"`
}

// RiskFactors is the fixed attribution shown with every prediction readout
var RiskFactors = []Importance{
	{Feature: "Operating Temperature Anomaly", Weight: 0.23},
	{Feature: "Vibration Pattern Change", Weight: 0.19},
	{Feature: "Load Factor Deviation", Weight: 0.16},
	{Feature: "Maintenance Interval Overdue", Weight: 0.14},
	{Feature: "Contact Resistance Increase", Weight: 0.12},
	{Feature: "Environmental Stress Index", Weight: 0.09},
	{Feature: "Historical Fault Pattern", Weight: 0.07},
}
