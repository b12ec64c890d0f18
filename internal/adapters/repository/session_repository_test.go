package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kamal-hamza/gridrisk/internal/core/domain"
	"github.com/kamal-hamza/gridrisk/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.SessionStore = (*MemorySessionRepository)(nil)

var base = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func session(id string, age time.Duration) *domain.Session {
	return &domain.Session{ID: id, Seed: 1, Count: 10, CreatedAt: base.Add(-age)}
}

func TestMemorySessionRepository_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository()

	require.NoError(t, repo.Save(ctx, session("a", 0)))

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)

	require.NoError(t, repo.Delete(ctx, "a"))

	_, err = repo.Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	err = repo.Delete(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestMemorySessionRepository_SaveRejectsEmpty(t *testing.T) {
	repo := NewMemorySessionRepository()
	assert.Error(t, repo.Save(context.Background(), nil))
	assert.Error(t, repo.Save(context.Background(), &domain.Session{}))
}

func TestMemorySessionRepository_ListOldestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository()

	require.NoError(t, repo.Save(ctx, session("new", time.Minute)))
	require.NoError(t, repo.Save(ctx, session("old", time.Hour)))
	require.NoError(t, repo.Save(ctx, session("mid", 10*time.Minute)))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "old", list[0].ID)
	assert.Equal(t, "mid", list[1].ID)
	assert.Equal(t, "new", list[2].ID)
}

func TestMemorySessionRepository_ExpireBefore(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository()

	require.NoError(t, repo.Save(ctx, session("fresh", time.Minute)))
	require.NoError(t, repo.Save(ctx, session("stale-1", 2*time.Hour)))
	require.NoError(t, repo.Save(ctx, session("stale-2", 3*time.Hour)))

	expired := repo.ExpireBefore(base.Add(-time.Hour))
	assert.Equal(t, []string{"stale-1", "stale-2"}, expired)
	assert.Equal(t, 1, repo.Len())
}

func TestMemorySessionRepository_Concurrent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s-%d", i)
			_ = repo.Save(ctx, session(id, 0))
			_, _ = repo.Get(ctx, id)
			_, _ = repo.List(ctx)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, repo.Len())
}
