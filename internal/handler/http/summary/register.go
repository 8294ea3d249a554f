package summary

import (
	"log/slog"
	"net/http"

	"textdigest/pkg/security/csp"
)

// Register registers the summarization routes with the given mux.
func Register(mux *http.ServeMux, svc Summarizer, logger *slog.Logger) {
	mux.Handle("GET /{$}", csp.Middleware(csp.FormPolicy())(IndexHandler{}))
	mux.Handle("POST /summarize", csp.Middleware(csp.StrictPolicy())(SummarizeHandler{Svc: svc, Logger: logger}))
}
