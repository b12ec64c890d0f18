package services

import (
	"context"
	"fmt"

	"github.com/kamal-hamza/gridrisk/internal/catalog"
	"github.com/kamal-hamza/gridrisk/internal/core/domain"
)

// Per-model scaling applied to an asset's probability for the readout
const (
	neuralNetFactor    = 0.97
	randomForestFactor = 1.03
)

// ModelEstimate is one model's line in a prediction readout
type ModelEstimate struct {
	Model       string  `json:"model"`
	Probability float64 `json:"probability"`
}

// Prediction is the ensemble readout for one asset. It is derived from the
// asset's stored probability; no model is evaluated.
type Prediction struct {
	Asset       domain.AssetRecord   `json:"asset"`
	Estimates   []ModelEstimate      `json:"estimates"`
	Ensemble    float64              `json:"ensemble"`
	Confidence  string               `json:"confidence"`
	RiskFactors []catalog.Importance `json:"risk_factors"`
}

// PredictionService builds prediction readouts over a fleet
type PredictionService struct {
	query *QueryService
}

// NewPredictionService creates a new prediction service
func NewPredictionService(query *QueryService) *PredictionService {
	return &PredictionService{
		query: query,
	}
}

// PredictRequest represents a request for one asset's readout
type PredictRequest struct {
	AssetID string
}

// Execute returns the readout for the requested asset
func (s *PredictionService) Execute(ctx context.Context, req PredictRequest) (*Prediction, error) {
	asset, err := s.query.Lookup(ctx, req.AssetID)
	if err != nil {
		return nil, fmt.Errorf("failed to predict: %w", err)
	}

	p := Predict(asset)
	return &p, nil
}

// Predict builds the readout for a single record
func Predict(asset domain.AssetRecord) Prediction {
	p := asset.FailureProbability

	factors := make([]catalog.Importance, len(catalog.RiskFactors))
	copy(factors, catalog.RiskFactors)

	return Prediction{
		Asset: asset,
		Estimates: []ModelEstimate{
			{Model: "XGBoost", Probability: p},
			{Model: "TensorFlow Neural Net", Probability: p * neuralNetFactor},
			{Model: "Random Forest", Probability: p * randomForestFactor},
		},
		Ensemble:    p,
		Confidence:  "High Confidence",
		RiskFactors: factors,
	}
}
