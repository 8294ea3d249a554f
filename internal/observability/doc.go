// Package observability groups the logging and tracing infrastructure shared
// by the API server and the CLI.
//
// Subpackages:
//   - logging: slog construction and request-ID scoped loggers
//   - tracing: OpenTelemetry tracer, provider setup and HTTP middleware
//
// Summary metrics live next to the code that records them
// (internal/summarizer and internal/handler/http).
package observability
