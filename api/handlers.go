package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"tourrec/recommender"
	"tourrec/search"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type recommendationsResponse struct {
	UserID          string                       `json:"user_id"`
	Recommendations []recommender.Recommendation `json:"recommendations"`
}

type searchResponse struct {
	Results []search.Result `json:"results"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// RecommendationsHandler serves GET /v1/recommendations/{user_id}.
func (s *Server) RecommendationsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("user_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	recs, err := s.recommendations.Recommend(r.Context(), userID.String(), 0)
	if err != nil {
		s.logger.Error("recommendation request failed",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error: %v", err))
		return
	}

	writeJSON(w, recommendationsResponse{
		UserID:          userID.String(),
		Recommendations: recs,
	})
}

// SearchHandler serves GET /v1/recommendations/search/{query}?page=&size=.
func (s *Server) SearchHandler(w http.ResponseWriter, r *http.Request) {
	query := r.PathValue("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query")
		return
	}

	page := parseIntParam(r, "page", 0)
	size := parseIntParam(r, "size", search.DefaultPageSize)

	results, err := s.search.Search(r.Context(), query, size, page)
	if err != nil {
		s.logger.Error("search request failed",
			zap.String("query", query),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error: %v", err))
		return
	}

	writeJSON(w, searchResponse{Results: results})
}

func parseIntParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Detail: detail})
}
