// Package http provides the HTTP handlers and middleware of the summarization
// API: health checks, Prometheus metrics and the middleware chain wrapped
// around the summary routes.
package http

import (
	"net/http"
	"time"

	"textdigest/internal/handler/http/respond"
)

// HealthResponse represents the JSON response of GET /health.
type HealthResponse struct {
	Status    string `json:"status"`    // always "healthy" while the process serves requests
	Message   string `json:"message"`   // human readable status
	Timestamp string `json:"timestamp"` // RFC 3339, UTC
	Version   string `json:"version"`   // application version
}

// HealthHandler reports that the API is up. The summarizer has no external
// dependencies, so there is nothing further to probe.
type HealthHandler struct {
	Version string
	// Now defaults to time.Now.
	Now func() time.Time
}

// ServeHTTP ヘルスチェック
// @Summary      ヘルスチェック
// @Tags         health
// @Produce      json
// @Success      200 {object} HealthResponse
// @Router       /health [get]
func (h HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Message:   "API is running",
		Timestamp: now().UTC().Format(time.RFC3339),
		Version:   h.Version,
	})
}

// LiveHandler is the liveness probe for orchestrators.
type LiveHandler struct{}

// ServeHTTP always answers 200 "alive".
func (LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}
