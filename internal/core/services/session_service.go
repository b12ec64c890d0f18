package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kamal-hamza/gridrisk/internal/core/domain"
	"github.com/kamal-hamza/gridrisk/internal/core/ports"
	"github.com/kamal-hamza/gridrisk/internal/metrics"
	"github.com/kamal-hamza/gridrisk/pkg/logging"
	"go.uber.org/zap"
)

// SessionService caches one generated fleet per viewer session
type SessionService struct {
	store     ports.SessionStore
	generator *GenerateService
	clock     ports.Clock
	logger    *zap.Logger
	metrics   *metrics.Registry
}

// NewSessionService creates a new session service. metrics may be nil.
func NewSessionService(store ports.SessionStore, generator *GenerateService, clock ports.Clock, logger *zap.Logger, reg *metrics.Registry) *SessionService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &SessionService{
		store:     store,
		generator: generator,
		clock:     clock,
		logger:    logging.OrNop(logger),
		metrics:   reg,
	}
}

// OpenSessionRequest represents a request to start a session
type OpenSessionRequest struct {
	Count int
	Seed  uint64 // 0 draws a fresh seed for this session only
}

// OpenSessionResponse represents a newly opened session
type OpenSessionResponse struct {
	Session *domain.Session
	Summary domain.Summary
}

// Open generates a fleet once and keeps it under a new session id
func (s *SessionService) Open(ctx context.Context, req OpenSessionRequest) (*OpenSessionResponse, error) {
	gen, err := s.generator.Execute(ctx, GenerateRequest{Count: req.Count, Seed: req.Seed})
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		Seed:      gen.Seed,
		Count:     gen.Fleet.Len(),
		CreatedAt: s.clock.Now(),
		Fleet:     gen.Fleet,
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	if s.metrics != nil {
		s.metrics.SessionOpened()
	}
	s.logger.Info("session opened",
		zap.String("session_id", session.ID),
		zap.Int("count", session.Count),
		zap.Uint64("seed", session.Seed),
	)

	return &OpenSessionResponse{
		Session: session,
		Summary: gen.Summary,
	}, nil
}

// Get returns an open session
func (s *SessionService) Get(ctx context.Context, id string) (*domain.Session, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Query returns a query service over the session's fleet
func (s *SessionService) Query(ctx context.Context, id string) (*QueryService, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewQueryService(session.Fleet), nil
}

// Close discards a session and its fleet
func (s *SessionService) Close(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.SessionClosed()
	}
	s.logger.Info("session closed", zap.String("session_id", id))
	return nil
}

// List returns all open sessions, oldest first
func (s *SessionService) List(ctx context.Context) ([]*domain.Session, error) {
	sessions, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// Expire closes every session older than ttl and returns how many went
func (s *SessionService) Expire(ctx context.Context, ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}

	expired := s.store.ExpireBefore(s.clock.Now().Add(-ttl))
	for _, id := range expired {
		if s.metrics != nil {
			s.metrics.SessionClosed()
		}
		s.logger.Debug("session expired", zap.String("session_id", id))
	}
	return len(expired)
}
