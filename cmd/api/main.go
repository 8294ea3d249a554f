package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"textdigest/internal/config"
	hhttp "textdigest/internal/handler/http"
	"textdigest/internal/handler/http/requestid"
	hsummary "textdigest/internal/handler/http/summary"
	"textdigest/internal/observability/logging"
	"textdigest/internal/observability/tracing"
	"textdigest/internal/summarizer"
	summaryUC "textdigest/internal/usecase/summary"
)

// @title           textdigest API
// @version         1.0
// @description     学習済みモデルを使わない抽出型テキスト要約の REST API
// @BasePath        /

const serviceName = "textdigest"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := initLogger(cfg)

	shutdownTracing := tracing.InitProvider(serviceName, cfg.Server.Version)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("failed to shut down tracer provider", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	components := setupServer(logger, cfg)
	if err := runServer(ctx, logger, cfg, components); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// initLogger builds the process logger from configuration and installs it as the default.
func initLogger(cfg *config.Config) *slog.Logger {
	logger := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)
	return logger
}

// ServerComponents holds components needed for server operation and cleanup.
type ServerComponents struct {
	Handler     http.Handler
	RateLimiter *hhttp.RateLimiter
}

// setupServer wires the summarizer, routes and middleware chain.
func setupServer(logger *slog.Logger, cfg *config.Config) *ServerComponents {
	engine := summarizer.NewFrequency(logger, summarizer.NewPrometheusSummaryMetrics())
	svc := summaryUC.NewService(engine, summaryUC.Config{
		DefaultMaxLength: cfg.Summary.DefaultMaxLength,
		MaxLengthLimit:   cfg.Summary.MaxLengthLimit,
		MaxInputChars:    cfg.Summary.MaxInputChars,
	})

	mux := http.NewServeMux()
	hsummary.Register(mux, svc, logger)

	// ヘルスチェック・メトリクス
	mux.Handle("GET /health", hhttp.HealthHandler{Version: cfg.Server.Version})
	mux.Handle("GET /live", hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	var rl *hhttp.RateLimiter
	if cfg.RateLimit.Enabled {
		rl = hhttp.NewRateLimiter(cfg.RateLimit)
		logger.Info("rate limiting enabled",
			slog.Float64("rps", cfg.RateLimit.RPS),
			slog.Int("burst", cfg.RateLimit.Burst),
			slog.Duration("idle_timeout", cfg.RateLimit.IdleTimeout))
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}

	return &ServerComponents{
		Handler:     applyMiddleware(logger, cfg, mux, rl),
		RateLimiter: rl,
	}
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: Request ID → Tracing → IP Rate Limit → Recovery → Logging → Body Limit → Timeout → Metrics
func applyMiddleware(logger *slog.Logger, cfg *config.Config, handler http.Handler, rl *hhttp.RateLimiter) http.Handler {
	chain := []hhttp.Middleware{
		requestid.Middleware,
		tracing.Middleware,
	}
	if rl != nil {
		chain = append(chain, rl.Limit)
	}
	chain = append(chain,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.LimitRequestBody(cfg.HTTP.MaxBodyBytes),
		hhttp.Timeout(cfg.HTTP.RequestTimeout),
		hhttp.MetricsMiddleware,
	)
	return hhttp.Chain(handler, chain...)
}

// runServer serves HTTP until ctx is canceled, then shuts down gracefully.
func runServer(ctx context.Context, logger *slog.Logger, cfg *config.Config, components *ServerComponents) error {
	bgCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if components.RateLimiter != nil {
		go components.RateLimiter.Run(bgCtx)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Slowloris 対策
		BaseContext: func(_ net.Listener) context.Context {
			return bgCtx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Server.Addr),
			slog.String("version", cfg.Server.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	cancel()
	logger.Info("server stopped")
	return nil
}
