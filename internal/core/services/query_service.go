package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/kamal-hamza/gridrisk/internal/core/domain"
)

// QueryService handles read-only projections over one fleet
type QueryService struct {
	fleet *domain.Fleet
}

// NewQueryService creates a query service over fleet. A nil fleet behaves as empty.
func NewQueryService(fleet *domain.Fleet) *QueryService {
	if fleet == nil {
		fleet = domain.NewFleet(nil, 0, time.Time{})
	}
	return &QueryService{
		fleet: fleet,
	}
}

// Fleet returns the fleet being queried
func (s *QueryService) Fleet() *domain.Fleet {
	return s.fleet
}

// QueryRequest represents a filtered, truncated view of the fleet
type QueryRequest struct {
	Levels    []domain.RiskLevel // Keep only these levels (optional)
	AssetType string             // Exact type match, case-insensitive (optional)
	Location  string             // Exact location match, case-insensitive (optional)
	Limit     int                // Keep the first N after filtering (0 = all)
}

// QueryResponse represents the projected records
type QueryResponse struct {
	Assets  []domain.AssetRecord
	Matched int // Records that passed the filters before Limit was applied
}

// Execute filters by risk level, type and location, then takes a prefix.
// Fleet order is preserved throughout.
func (s *QueryService) Execute(ctx context.Context, req QueryRequest) (*QueryResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative, got %d", domain.ErrInvalidCount, req.Limit)
	}

	filtered := s.fleet.Filter(req.Levels...)

	if req.AssetType != "" || req.Location != "" {
		kept := filtered[:0]
		for _, a := range filtered {
			if a.MatchesType(req.AssetType) && a.MatchesLocation(req.Location) {
				kept = append(kept, a)
			}
		}
		filtered = kept
	}

	return &QueryResponse{
		Assets:  domain.Prefix(filtered, req.Limit),
		Matched: len(filtered),
	}, nil
}

// Lookup returns a single record by asset id
func (s *QueryService) Lookup(ctx context.Context, assetID string) (domain.AssetRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.AssetRecord{}, err
	}
	a, ok := s.fleet.Lookup(assetID)
	if !ok {
		return domain.AssetRecord{}, fmt.Errorf("%w: %s", domain.ErrAssetNotFound, assetID)
	}
	return a, nil
}

// Summarize aggregates the whole fleet
func (s *QueryService) Summarize(ctx context.Context) (domain.Summary, error) {
	if err := ctx.Err(); err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(s.fleet.Assets()), nil
}

// SearchRequest represents a search query
type SearchRequest struct {
	Query string
}

// SearchResponse represents search results
type SearchResponse struct {
	Assets []domain.AssetRecord
	Total  int
}

// Search performs fuzzy search on asset ids, types, locations and voltages
func (s *QueryService) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	assets := s.fleet.Assets()

	// If no query, return all
	if strings.TrimSpace(req.Query) == "" {
		return &SearchResponse{
			Assets: assets,
			Total:  len(assets),
		}, nil
	}

	matches := fuzzySearch(assets, req.Query)

	return &SearchResponse{
		Assets: matches,
		Total:  len(matches),
	}, nil
}

// fuzzyMatch represents a scored match
type fuzzyMatch struct {
	asset domain.AssetRecord
	score int
}

// fuzzySearch scores each asset on its best field. Equal scores keep fleet order.
func fuzzySearch(assets []domain.AssetRecord, query string) []domain.AssetRecord {
	query = strings.TrimSpace(query)
	if query == "" {
		return assets
	}

	var matches []fuzzyMatch

	for _, a := range assets {
		fields := []struct {
			text  string
			bonus int
		}{
			{a.ID, 1000},
			{a.Type, 500},
			{a.Location, 300},
			{a.VoltageLevel, 200},
			{string(a.RiskLevel), 100},
		}

		for _, f := range fields {
			if score := fuzzyMatchScore(f.text, query); score > 0 {
				matches = append(matches, fuzzyMatch{asset: a, score: score + f.bonus})
				break
			}
		}
	}

	// Sort by score (highest first)
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	result := make([]domain.AssetRecord, len(matches))
	for i, m := range matches {
		result[i] = m.asset
	}

	return result
}

// fuzzyMatchScore calculates a score for fuzzy matching query against text
// Returns 0 if no match, higher scores for better matches
func fuzzyMatchScore(text, query string) int {
	if text == "" || query == "" {
		return 0
	}

	textLower := strings.ToLower(text)
	queryLower := strings.ToLower(query)

	if text == query {
		return 10000
	}

	if textLower == queryLower {
		return 9000
	}

	if strings.Contains(textLower, queryLower) {
		score := 5000
		if strings.HasPrefix(textLower, queryLower) {
			score += 2000
		}
		return score
	}

	// Character-by-character subsequence match
	score := 0
	textRunes := []rune(textLower)
	queryRunes := []rune(queryLower)

	queryIdx := 0
	consecutiveMatches := 0
	lastMatchIdx := -1

	for textIdx := 0; textIdx < len(textRunes) && queryIdx < len(queryRunes); textIdx++ {
		if textRunes[textIdx] != queryRunes[queryIdx] {
			continue
		}

		score += 100

		if textIdx == lastMatchIdx+1 {
			consecutiveMatches++
			score += consecutiveMatches * 50
		} else {
			consecutiveMatches = 0
		}

		// Word boundary
		if textIdx == 0 || unicode.IsSpace(textRunes[textIdx-1]) || textRunes[textIdx-1] == '-' || textRunes[textIdx-1] == '.' {
			score += 200
		}

		if textIdx == 0 {
			score += 300
		}

		lastMatchIdx = textIdx
		queryIdx++
	}

	// All query characters must be matched
	if queryIdx != len(queryRunes) {
		return 0
	}

	// Penalty for gaps between matches
	if lastMatchIdx >= 0 {
		matchSpan := lastMatchIdx + 1
		score -= (matchSpan - len(queryRunes)) * 10
	}

	if score < 1 {
		score = 1
	}
	return score
}
