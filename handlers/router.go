// backend/handlers/router.go
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts every route behind request logging, panic recovery and CORS.
func NewRouter(analyzer Analyzer, allowedOrigins []string) http.Handler {
	h := NewAnalyzeHandler(analyzer)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware(trimOrigins(allowedOrigins)))

	r.Get("/api/health", Health)
	r.Post("/api/analyze", h.Analyze)
	r.Post("/api/analyze/export", h.Export)

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusMethodNotAllowed, "Method "+r.Method+" is not allowed on "+r.URL.Path)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, "No route for "+r.URL.Path)
	})
	return r
}

// Health handles GET /api/health.
func Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "demand trends backend is healthy"})
}
