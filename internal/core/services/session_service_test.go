package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kamal-hamza/gridrisk/internal/core/domain"
	"github.com/kamal-hamza/gridrisk/internal/core/ports/mocks"
	"github.com/kamal-hamza/gridrisk/internal/metrics"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionService(store *mocks.MockSessionStore, clock *mocks.FixedClock, reg *metrics.Registry) *SessionService {
	gen := NewGenerateService(clock, nil, reg)
	return NewSessionService(store, gen, clock, nil, reg)
}

func activeSessions(t *testing.T, reg *metrics.Registry) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, reg.SessionsActive.Write(&m))
	return m.GetGauge().GetValue()
}

func TestSessionService_Open(t *testing.T) {
	tests := []struct {
		name        string
		request     OpenSessionRequest
		saveErr     error
		expectError bool
	}{
		{
			name:    "seeded session",
			request: OpenSessionRequest{Count: 150, Seed: 42},
		},
		{
			name:    "fresh seed",
			request: OpenSessionRequest{Count: 20},
		},
		{
			name:        "invalid count",
			request:     OpenSessionRequest{Count: 0},
			expectError: true,
		},
		{
			name:        "store failure",
			request:     OpenSessionRequest{Count: 5, Seed: 1},
			saveErr:     errors.New("full"),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockSessionStore()
			store.SaveErr = tt.saveErr
			reg := metrics.NewRegistry()
			svc := newTestSessionService(store, mocks.NewFixedClock(testNow), reg)

			resp, err := svc.Open(context.Background(), tt.request)
			if tt.expectError {
				assert.Error(t, err)
				assert.Equal(t, 0.0, activeSessions(t, reg))
				return
			}

			require.NoError(t, err)
			_, parseErr := uuid.Parse(resp.Session.ID)
			assert.NoError(t, parseErr)
			assert.Equal(t, tt.request.Count, resp.Session.Count)
			assert.Equal(t, tt.request.Count, resp.Session.Fleet.Len())
			assert.NotZero(t, resp.Session.Seed)
			assert.Equal(t, testNow, resp.Session.CreatedAt)
			assert.Equal(t, 1.0, activeSessions(t, reg))

			got, err := svc.Get(context.Background(), resp.Session.ID)
			require.NoError(t, err)
			assert.Same(t, resp.Session, got)
		})
	}
}

func TestSessionService_FleetIsStableAcrossReads(t *testing.T) {
	svc := newTestSessionService(mocks.NewMockSessionStore(), mocks.NewFixedClock(testNow), nil)

	resp, err := svc.Open(context.Background(), OpenSessionRequest{Count: 30})
	require.NoError(t, err)

	q1, err := svc.Query(context.Background(), resp.Session.ID)
	require.NoError(t, err)
	q2, err := svc.Query(context.Background(), resp.Session.ID)
	require.NoError(t, err)

	assert.Equal(t, q1.Fleet().Assets(), q2.Fleet().Assets())
}

func TestSessionService_Close(t *testing.T) {
	reg := metrics.NewRegistry()
	svc := newTestSessionService(mocks.NewMockSessionStore(), mocks.NewFixedClock(testNow), reg)
	ctx := context.Background()

	resp, err := svc.Open(ctx, OpenSessionRequest{Count: 5, Seed: 3})
	require.NoError(t, err)

	require.NoError(t, svc.Close(ctx, resp.Session.ID))
	assert.Equal(t, 0.0, activeSessions(t, reg))

	_, err = svc.Get(ctx, resp.Session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	err = svc.Close(ctx, resp.Session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionService_List(t *testing.T) {
	svc := newTestSessionService(mocks.NewMockSessionStore(), mocks.NewFixedClock(testNow), nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Open(ctx, OpenSessionRequest{Count: 5})
		require.NoError(t, err)
	}

	sessions, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 3)
}

func TestSessionService_Expire(t *testing.T) {
	clock := mocks.NewFixedClock(testNow)
	svc := newTestSessionService(mocks.NewMockSessionStore(), clock, nil)
	ctx := context.Background()

	old, err := svc.Open(ctx, OpenSessionRequest{Count: 5, Seed: 1})
	require.NoError(t, err)

	clock.T = testNow.Add(45 * time.Minute)
	recent, err := svc.Open(ctx, OpenSessionRequest{Count: 5, Seed: 2})
	require.NoError(t, err)

	assert.Equal(t, 0, svc.Expire(ctx, 0))
	assert.Equal(t, 1, svc.Expire(ctx, 30*time.Minute))

	_, err = svc.Get(ctx, old.Session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = svc.Get(ctx, recent.Session.ID)
	assert.NoError(t, err)
}

func TestSessionService_ConcurrentSessionsAreIndependent(t *testing.T) {
	svc := newTestSessionService(mocks.NewMockSessionStore(), mocks.NewFixedClock(testNow), nil)
	ctx := context.Background()

	const n = 8
	results := make([]*OpenSessionResponse, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := svc.Open(ctx, OpenSessionRequest{Count: 25, Seed: 77})
			if err == nil {
				results[i] = resp
			}
		}(i)
	}
	wg.Wait()

	// Same seed, separate sources: every session sees the same fleet
	for i := 1; i < n; i++ {
		require.NotNil(t, results[i])
		assert.Equal(t, results[0].Session.Fleet.Assets(), results[i].Session.Fleet.Assets())
		assert.NotEqual(t, results[0].Session.ID, results[i].Session.ID)
	}
}
