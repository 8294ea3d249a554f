// Package tracing provides OpenTelemetry tracing integration.
//
// The API server installs an SDK tracer provider at startup with InitProvider;
// without it the global no-op provider is used and spans cost nothing.
//
// Example usage:
//
//	shutdown := tracing.InitProvider("textdigest", version)
//	defer func() { _ = shutdown(context.Background()) }()
//
//	ctx, span := tracing.GetTracer().Start(ctx, "summarize")
//	defer span.End()
package tracing
