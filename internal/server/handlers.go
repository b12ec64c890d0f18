package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kamal-hamza/gridrisk/internal/core/domain"
	"github.com/kamal-hamza/gridrisk/internal/core/services"
	"go.uber.org/zap"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.sessions.List(r.Context())
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   s.version,
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Sessions:  len(sessions),
	})
}

func (s *Server) handleOpenSession(w http.ResponseWriter, r *http.Request) {
	var req OpenSessionRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Count == 0 {
		req.Count = s.defaultCount
	}

	resp, err := s.sessions.Open(r.Context(), services.OpenSessionRequest{
		Count: req.Count,
		Seed:  req.Seed,
	})
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	summary := resp.Summary
	s.respondJSON(w, http.StatusCreated, sessionResponse(resp.Session, &summary))
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.sessions.List(r.Context())
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	out := make([]SessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, sessionResponse(sess, nil))
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Close(r.Context(), r.PathValue("id")); err != nil {
		s.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAssets supports risk, type, location, limit and q query parameters.
// q switches to fuzzy search and ignores the other filters.
func (s *Server) handleAssets(w http.ResponseWriter, r *http.Request) {
	query, err := s.sessions.Query(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	total := query.Fleet().Len()
	params := r.URL.Query()

	if q := params.Get("q"); q != "" {
		resp, err := query.Search(r.Context(), services.SearchRequest{Query: q})
		if err != nil {
			s.respondServiceError(w, err)
			return
		}
		s.respondJSON(w, http.StatusOK, AssetsResponse{Assets: nonNil(resp.Assets), Matched: resp.Total, Total: total})
		return
	}

	req, err := parseQueryRequest(params)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := query.Execute(r.Context(), req)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, AssetsResponse{Assets: nonNil(resp.Assets), Matched: resp.Matched, Total: total})
}

func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	query, err := s.sessions.Query(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	prediction, err := services.NewPredictionService(query).Execute(r.Context(), services.PredictRequest{
		AssetID: r.PathValue("assetID"),
	})
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, prediction)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	query, err := s.sessions.Query(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	summary, err := query.Summarize(r.Context())
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, summary)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	query, err := s.sessions.Query(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	summary, err := query.Summarize(r.Context())
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	// Render into a buffer so a failure can still produce a JSON error
	var buf strings.Builder
	if err := s.renderer.Render(&buf, query.Fleet(), summary); err != nil {
		s.respondServiceError(w, fmt.Errorf("failed to render report: %w", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, buf.String()); err != nil {
		s.logger.Warn("failed to write report", zap.Error(err))
	}
}

// parseQueryRequest reads projection filters from URL parameters
func parseQueryRequest(params map[string][]string) (services.QueryRequest, error) {
	var req services.QueryRequest

	if risk := params["risk"]; len(risk) > 0 {
		levels, err := domain.ParseRiskLevels(risk)
		if err != nil {
			return req, err
		}
		req.Levels = levels
	}

	if v := params["type"]; len(v) > 0 {
		req.AssetType = v[0]
	}
	if v := params["location"]; len(v) > 0 {
		req.Location = v[0]
	}

	if v := params["limit"]; len(v) > 0 && v[0] != "" {
		limit, err := strconv.Atoi(v[0])
		if err != nil || limit < 0 {
			return req, fmt.Errorf("invalid limit %q: expected a non-negative integer", v[0])
		}
		req.Limit = limit
	}

	return req, nil
}

func sessionResponse(sess *domain.Session, summary *domain.Summary) SessionResponse {
	return SessionResponse{
		ID:        sess.ID,
		Seed:      sess.Seed,
		Count:     sess.Count,
		CreatedAt: sess.CreatedAt,
		Summary:   summary,
	}
}

func nonNil(assets []domain.AssetRecord) []domain.AssetRecord {
	if assets == nil {
		return []domain.AssetRecord{}
	}
	return assets
}

// Helper methods

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode json response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}

// respondServiceError maps sentinel errors onto status codes
func (s *Server) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case services.IsInvalidRequest(err):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrAssetNotFound):
		s.respondError(w, http.StatusNotFound, err.Error())
	default:
		s.logger.Error("request failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "internal error")
	}
}
