package services

import (
	"context"
	"testing"

	"github.com/kamal-hamza/gridrisk/internal/catalog"
	"github.com/kamal-hamza/gridrisk/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictionService_Execute(t *testing.T) {
	svc := NewPredictionService(NewQueryService(testQueryFleet()))

	pred, err := svc.Execute(context.Background(), PredictRequest{AssetID: "AST-0001"})
	require.NoError(t, err)

	assert.Equal(t, "AST-0001", pred.Asset.ID)
	require.Len(t, pred.Estimates, 3)
	assert.InDelta(t, 0.20, pred.Estimates[0].Probability, 1e-12)
	assert.InDelta(t, 0.194, pred.Estimates[1].Probability, 1e-12)
	assert.InDelta(t, 0.206, pred.Estimates[2].Probability, 1e-12)
	assert.Equal(t, 0.20, pred.Ensemble)
	assert.Equal(t, catalog.RiskFactors, pred.RiskFactors)
}

func TestPredictionService_UnknownAsset(t *testing.T) {
	svc := NewPredictionService(NewQueryService(testQueryFleet()))

	_, err := svc.Execute(context.Background(), PredictRequest{AssetID: "AST-9999"})
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)
}

func TestPredict_FactorsAreCopied(t *testing.T) {
	pred := Predict(domain.AssetRecord{ID: "AST-0001", FailureProbability: 0.1})
	pred.RiskFactors[0].Weight = 0

	assert.Equal(t, 0.23, catalog.RiskFactors[0].Weight)
}
