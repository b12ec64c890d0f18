package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kamal-hamza/gridrisk/internal/core/domain"
)

// MemorySessionRepository keeps open sessions for the life of the process.
// Nothing is written to disk.
type MemorySessionRepository struct {
	mu    sync.RWMutex
	cache map[string]*domain.Session
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		cache: make(map[string]*domain.Session),
	}
}

// Save stores or replaces a session
func (r *MemorySessionRepository) Save(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("cannot save session without an id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache[session.ID] = session
	return nil
}

func (r *MemorySessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.cache[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return session, nil
}

func (r *MemorySessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cache[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	delete(r.cache, id)
	return nil
}

// List returns all sessions, oldest first
func (r *MemorySessionRepository) List(ctx context.Context) ([]*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]*domain.Session, 0, len(r.cache))
	for _, s := range r.cache {
		sessions = append(sessions, s)
	}

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	return sessions, nil
}

// Len returns the number of open sessions
func (r *MemorySessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cache)
}

// ExpireBefore drops sessions created before cutoff and returns their ids
func (r *MemorySessionRepository) ExpireBefore(cutoff time.Time) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var expired []string
	for id, s := range r.cache {
		if s.CreatedAt.Before(cutoff) {
			expired = append(expired, id)
			delete(r.cache, id)
		}
	}
	sort.Strings(expired)
	return expired
}
