package config

import (
	"log/slog"
	"time"
)

// RateLimitConfig configures the per client IP token bucket limiter.
type RateLimitConfig struct {
	Enabled bool `yaml:"enabled"`
	// RPS is the sustained number of requests per second per client IP.
	RPS float64 `yaml:"rps"`
	// Burst is the bucket size.
	Burst int `yaml:"burst"`
	// IdleTimeout evicts limiters of clients not seen for this long.
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	// TrustForwardedFor takes the client IP from X-Forwarded-For. Enable only
	// behind a proxy that sets the header.
	TrustForwardedFor bool `yaml:"trust_forwarded_for"`
}

// DefaultRateLimitConfig returns the limiter settings used when nothing is configured.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:     true,
		RPS:         5,
		Burst:       10,
		IdleTimeout: 10 * time.Minute,
	}
}

// LoadRateLimitConfig overlays the RATELIMIT_* environment variables on base.
// Out of range values are replaced by the defaults with a warning.
//
// Environment variables:
//   - RATELIMIT_ENABLED: Enable/disable rate limiting (default: true)
//   - RATELIMIT_RPS: Requests per second per client IP (default: 5)
//   - RATELIMIT_BURST: Burst size per client IP (default: 10)
//   - RATELIMIT_IDLE_TIMEOUT: Eviction age for idle clients (default: 10m)
//   - RATELIMIT_TRUST_FORWARDED_FOR: Use X-Forwarded-For as the client IP (default: false)
func LoadRateLimitConfig(base RateLimitConfig) RateLimitConfig {
	def := DefaultRateLimitConfig()
	cfg := base

	cfg.Enabled = GetEnvBool("RATELIMIT_ENABLED", cfg.Enabled)
	cfg.TrustForwardedFor = GetEnvBool("RATELIMIT_TRUST_FORWARDED_FOR", cfg.TrustForwardedFor)

	cfg.RPS = GetEnvFloat("RATELIMIT_RPS", cfg.RPS)
	if cfg.RPS <= 0 {
		recordFallback("RATELIMIT_RPS")
		slog.Warn("invalid RATELIMIT_RPS, using default",
			slog.Float64("value", cfg.RPS),
			slog.Float64("default", def.RPS))
		cfg.RPS = def.RPS
	}

	cfg.Burst = GetEnvInt("RATELIMIT_BURST", cfg.Burst)
	if cfg.Burst <= 0 {
		recordFallback("RATELIMIT_BURST")
		slog.Warn("invalid RATELIMIT_BURST, using default",
			slog.Int("value", cfg.Burst),
			slog.Int("default", def.Burst))
		cfg.Burst = def.Burst
	}

	cfg.IdleTimeout = GetEnvDuration("RATELIMIT_IDLE_TIMEOUT", cfg.IdleTimeout)
	if err := ValidatePositiveDuration(cfg.IdleTimeout); err != nil {
		recordFallback("RATELIMIT_IDLE_TIMEOUT")
		slog.Warn("invalid RATELIMIT_IDLE_TIMEOUT, using default",
			slog.String("value", cfg.IdleTimeout.String()),
			slog.String("default", def.IdleTimeout.String()),
			slog.String("error", err.Error()))
		cfg.IdleTimeout = def.IdleTimeout
	}

	return cfg
}
