package services

import (
	"context"
	"testing"

	"github.com/kamal-hamza/gridrisk/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQueryFleet() *domain.Fleet {
	assets := []domain.AssetRecord{
		{ID: "AST-0003", Sequence: 3, Type: "Transformer", Location: "Substation Alpha", VoltageLevel: "138kV", FailureProbability: 0.31, RiskLevel: domain.RiskCritical, DaysToFailure: 12, MaintenanceCost: 10000, ReplacementCost: 100000},
		{ID: "AST-0001", Sequence: 1, Type: "Relay", Location: "Substation Beta", VoltageLevel: "25kV", FailureProbability: 0.20, RiskLevel: domain.RiskCritical, DaysToFailure: 30, MaintenanceCost: 20000, ReplacementCost: 200000},
		{ID: "AST-0005", Sequence: 5, Type: "Transformer", Location: "Substation Beta", VoltageLevel: "69kV", FailureProbability: 0.11, RiskLevel: domain.RiskHigh, DaysToFailure: 5, MaintenanceCost: 30000, ReplacementCost: 300000},
		{ID: "AST-0002", Sequence: 2, Type: "Cable", Location: "Distribution Hub North", VoltageLevel: "12.47kV", FailureProbability: 0.09, RiskLevel: domain.RiskHigh, DaysToFailure: 60, MaintenanceCost: 40000, ReplacementCost: 400000},
		{ID: "AST-0004", Sequence: 4, Type: "Bus", Location: "Substation Alpha", VoltageLevel: "500kV", FailureProbability: 0.03, RiskLevel: domain.RiskMedium, DaysToFailure: 80, MaintenanceCost: 50000, ReplacementCost: 500000},
	}
	return domain.NewFleet(assets, 9, testNow)
}

func ids(assets []domain.AssetRecord) []string {
	out := make([]string, len(assets))
	for i, a := range assets {
		out[i] = a.ID
	}
	return out
}

func TestQueryService_Execute(t *testing.T) {
	tests := []struct {
		name        string
		request     QueryRequest
		expectIDs   []string
		expectMatch int
		expectError bool
	}{
		{
			name:        "no filters returns fleet order",
			request:     QueryRequest{},
			expectIDs:   []string{"AST-0003", "AST-0001", "AST-0005", "AST-0002", "AST-0004"},
			expectMatch: 5,
		},
		{
			name:        "critical and high",
			request:     QueryRequest{Levels: []domain.RiskLevel{domain.RiskCritical, domain.RiskHigh}},
			expectIDs:   []string{"AST-0003", "AST-0001", "AST-0005", "AST-0002"},
			expectMatch: 4,
		},
		{
			name:        "prefix after filter",
			request:     QueryRequest{Levels: []domain.RiskLevel{domain.RiskCritical, domain.RiskHigh}, Limit: 3},
			expectIDs:   []string{"AST-0003", "AST-0001", "AST-0005"},
			expectMatch: 4,
		},
		{
			name:        "type filter ignores case",
			request:     QueryRequest{AssetType: "transformer"},
			expectIDs:   []string{"AST-0003", "AST-0005"},
			expectMatch: 2,
		},
		{
			name:        "location and level",
			request:     QueryRequest{Location: "Substation Alpha", Levels: []domain.RiskLevel{domain.RiskMedium}},
			expectIDs:   []string{"AST-0004"},
			expectMatch: 1,
		},
		{
			name:        "limit beyond length",
			request:     QueryRequest{Limit: 50},
			expectIDs:   []string{"AST-0003", "AST-0001", "AST-0005", "AST-0002", "AST-0004"},
			expectMatch: 5,
		},
		{
			name:        "no matches",
			request:     QueryRequest{AssetType: "Switch"},
			expectIDs:   []string{},
			expectMatch: 0,
		},
		{
			name:        "negative limit",
			request:     QueryRequest{Limit: -1},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewQueryService(testQueryFleet())

			resp, err := svc.Execute(context.Background(), tt.request)
			if tt.expectError {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectIDs, ids(resp.Assets))
			assert.Equal(t, tt.expectMatch, resp.Matched)
		})
	}
}

func TestQueryService_DoesNotMutateFleet(t *testing.T) {
	fleet := testQueryFleet()
	before := fleet.Assets()
	svc := NewQueryService(fleet)

	resp, err := svc.Execute(context.Background(), QueryRequest{AssetType: "Bus"})
	require.NoError(t, err)
	resp.Assets[0].FailureProbability = 0.99

	_, err = svc.Search(context.Background(), SearchRequest{Query: "sub"})
	require.NoError(t, err)

	assert.Equal(t, before, fleet.Assets())
}

func TestQueryService_Lookup(t *testing.T) {
	svc := NewQueryService(testQueryFleet())

	a, err := svc.Lookup(context.Background(), "ast-0005")
	require.NoError(t, err)
	assert.Equal(t, "Transformer", a.Type)

	_, err = svc.Lookup(context.Background(), "AST-0150")
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)
}

func TestQueryService_Summarize(t *testing.T) {
	svc := NewQueryService(testQueryFleet())

	s, err := svc.Summarize(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 2, s.ByRisk[domain.RiskCritical])
	assert.Equal(t, 2, s.ByRisk[domain.RiskHigh])
	assert.Equal(t, 1, s.ByRisk[domain.RiskMedium])
	assert.Equal(t, 2, s.ByType["Transformer"])
	assert.Equal(t, 150000, s.TotalMaintenanceCost)
	assert.Equal(t, 1500000, s.TotalReplacementCost)
	assert.InDelta(t, 0.148, s.MeanFailureProbability, 1e-9)
	require.NotNil(t, s.SoonestFailure)
	assert.Equal(t, "AST-0005", s.SoonestFailure.ID)
}

func TestQueryService_NilFleet(t *testing.T) {
	svc := NewQueryService(nil)

	resp, err := svc.Execute(context.Background(), QueryRequest{})
	require.NoError(t, err)
	assert.Empty(t, resp.Assets)

	s, err := svc.Summarize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, s.Total)
	assert.Len(t, s.ByRisk, 3)
}

func TestQueryService_Search(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		expectIDs []string
	}{
		{
			name:      "exact id",
			query:     "AST-0002",
			expectIDs: []string{"AST-0002"},
		},
		{
			name:      "type substring",
			query:     "transf",
			expectIDs: []string{"AST-0003", "AST-0005"},
		},
		{
			name:      "location",
			query:     "hub north",
			expectIDs: []string{"AST-0002"},
		},
		{
			name:      "voltage",
			query:     "500kv",
			expectIDs: []string{"AST-0004"},
		},
		{
			name:      "subsequence",
			query:     "trfmr",
			expectIDs: []string{"AST-0003", "AST-0005"},
		},
		{
			name:      "no results",
			query:     "zzz",
			expectIDs: []string{},
		},
		{
			name:      "empty query returns all",
			query:     "  ",
			expectIDs: []string{"AST-0003", "AST-0001", "AST-0005", "AST-0002", "AST-0004"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewQueryService(testQueryFleet())

			resp, err := svc.Search(context.Background(), SearchRequest{Query: tt.query})
			require.NoError(t, err)
			assert.Equal(t, tt.expectIDs, ids(resp.Assets))
			assert.Equal(t, len(tt.expectIDs), resp.Total)
		})
	}
}

func TestFuzzyMatchScore(t *testing.T) {
	tests := []struct {
		text  string
		query string
		match bool
	}{
		{"Transformer", "Transformer", true},
		{"Transformer", "trans", true},
		{"Circuit Breaker", "cb", true},
		{"Circuit Breaker", "bc", false},
		{"", "x", false},
		{"Relay", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text+"/"+tt.query, func(t *testing.T) {
			got := fuzzyMatchScore(tt.text, tt.query) > 0
			assert.Equal(t, tt.match, got)
		})
	}

	assert.Greater(t, fuzzyMatchScore("Relay", "Relay"), fuzzyMatchScore("Relay", "relay"))
	assert.Greater(t, fuzzyMatchScore("Relay", "rel"), fuzzyMatchScore("Relay", "rly"))
}
