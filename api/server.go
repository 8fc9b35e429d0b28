package api

import (
	"net/http"
	"strconv"

	"tourrec/recommender"
	"tourrec/search"

	"go.uber.org/zap"
)

// Server represents the API server
type Server struct {
	recommendations *recommender.Service
	search          *search.Service
	logger          *zap.Logger
	port            int
}

// NewServer creates a new API server
func NewServer(recommendations *recommender.Service, searchService *search.Service, logger *zap.Logger, port int) *Server {
	return &Server{
		recommendations: recommendations,
		search:          searchService,
		logger:          logger,
		port:            port,
	}
}

// Start starts the API server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	// Register API endpoints
	mux.HandleFunc("GET /v1/recommendations/search/{query}", s.SearchHandler)
	mux.HandleFunc("GET /v1/recommendations/{user_id}", s.RecommendationsHandler)

	// Health check endpoint
	mux.HandleFunc("GET /v1/recommendations/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message":"Recommendation Service!"}`))
	})

	s.logger.Info("starting API server", zap.Int("port", s.port))
	return http.ListenAndServe(":"+strconv.Itoa(s.port), withCORS(mux))
}

// withCORS allows any origin, matching the upstream gateway's open policy.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
