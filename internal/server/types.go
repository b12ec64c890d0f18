package server

import (
	"time"

	"github.com/kamal-hamza/gridrisk/internal/core/domain"
)

// OpenSessionRequest is the optional body of POST /api/sessions
type OpenSessionRequest struct {
	Count int    `json:"count"`
	Seed  uint64 `json:"seed"`
}

// SessionResponse describes an open session
type SessionResponse struct {
	ID        string          `json:"session_id"`
	Seed      uint64          `json:"seed"`
	Count     int             `json:"count"`
	CreatedAt time.Time       `json:"created_at"`
	Summary   *domain.Summary `json:"summary,omitempty"`
}

// AssetsResponse is a projection of a session's fleet
type AssetsResponse struct {
	Assets  []domain.AssetRecord `json:"assets"`
	Matched int                  `json:"matched"`
	Total   int                  `json:"total"`
}

// HealthResponse reports liveness
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
	Sessions  int       `json:"sessions"`
}

// ErrorResponse is written for every non-2xx response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
