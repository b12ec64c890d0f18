package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kamal-hamza/gridrisk/internal/core/domain"
	"github.com/kamal-hamza/gridrisk/internal/core/ports"
	"github.com/kamal-hamza/gridrisk/internal/metrics"
	"github.com/kamal-hamza/gridrisk/internal/validation"
	"github.com/kamal-hamza/gridrisk/pkg/logging"
	"go.uber.org/zap"
)

// MaxSampleSize bounds a single generation call
const MaxSampleSize = 100000

// GenerateService handles producing a fleet for one caller
type GenerateService struct {
	clock   ports.Clock
	logger  *zap.Logger
	metrics *metrics.Registry
}

// NewGenerateService creates a new generate service. metrics may be nil.
func NewGenerateService(clock ports.Clock, logger *zap.Logger, reg *metrics.Registry) *GenerateService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &GenerateService{
		clock:   clock,
		logger:  logging.OrNop(logger),
		metrics: reg,
	}
}

// GenerateRequest represents a request to generate a fleet
type GenerateRequest struct {
	Count int    `validate:"min=1,max=100000"`
	Seed  uint64 // 0 draws a fresh seed
}

// GenerateResponse represents a generated fleet
type GenerateResponse struct {
	Fleet    *domain.Fleet
	Seed     uint64
	Summary  domain.Summary
	Duration time.Duration
}

// Execute generates a fresh fleet with its own random source
func (s *GenerateService) Execute(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if req.Count <= 0 {
		s.recordFailure("invalid")
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidCount, req.Count)
	}
	if err := validation.Struct(req); err != nil {
		s.recordFailure("invalid")
		return nil, err
	}

	rng, seed, err := NewSeededSource(req.Seed)
	if err != nil {
		s.recordFailure("error")
		s.logger.Error("failed to seed random source", zap.Error(err))
		return nil, fmt.Errorf("failed to generate fleet: %w", err)
	}

	start := time.Now()
	assets, err := NewGenerator(rng, s.clock).Generate(req.Count)
	if err != nil {
		s.recordFailure("error")
		return nil, fmt.Errorf("failed to generate fleet: %w", err)
	}
	elapsed := time.Since(start)

	fleet := domain.NewFleet(assets, seed, s.clock.Now())
	summary := domain.Summarize(assets)

	if s.metrics != nil {
		byRisk := make(map[string]int, len(summary.ByRisk))
		for level, n := range summary.ByRisk {
			byRisk[level.String()] = n
		}
		s.metrics.RecordGeneration(elapsed, byRisk, summary.MeanFailureProbability)
	}

	s.logger.Debug("generated fleet",
		zap.Int("count", req.Count),
		zap.Uint64("seed", seed),
		zap.Int("critical", summary.ByRisk[domain.RiskCritical]),
		zap.Int("high", summary.ByRisk[domain.RiskHigh]),
		zap.Duration("duration", elapsed),
	)

	return &GenerateResponse{
		Fleet:    fleet,
		Seed:     seed,
		Summary:  summary,
		Duration: elapsed,
	}, nil
}

// IsInvalidRequest reports whether err is a caller error rather than a failure
func IsInvalidRequest(err error) bool {
	return errors.Is(err, domain.ErrInvalidCount) || errors.Is(err, validation.ErrInvalid) || errors.Is(err, domain.ErrUnknownRiskLevel)
}

func (s *GenerateService) recordFailure(result string) {
	if s.metrics != nil {
		s.metrics.RecordGenerationFailure(result)
	}
}
