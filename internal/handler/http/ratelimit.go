package http

import (
	"context"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"textdigest/internal/handler/http/respond"
	pkgconfig "textdigest/pkg/config"
)

// clientLimiter is the token bucket of one client IP.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limits requests per client IP with a token bucket per client.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter

	limit       rate.Limit
	burst       int
	idleTimeout time.Duration

	// TrustForwardedFor uses the first X-Forwarded-For address as the client IP.
	TrustForwardedFor bool

	now func() time.Time
}

// NewRateLimiter creates a limiter from cfg.
//
// Example:
//
//	rl := NewRateLimiter(pkgconfig.RateLimitConfig{RPS: 5, Burst: 10, IdleTimeout: 10 * time.Minute})
//	go rl.Run(ctx)
//	handler := rl.Limit(mux)
func NewRateLimiter(cfg pkgconfig.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		clients:     make(map[string]*clientLimiter),
		limit:       rate.Limit(cfg.RPS),
		burst:       cfg.Burst,
		idleTimeout: cfg.IdleTimeout,
		now:         time.Now,

		TrustForwardedFor: cfg.TrustForwardedFor,
	}
}

// Limit rejects requests over the client's budget with 429 and a Retry-After header.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := rl.clientIP(r)

		if !rl.allow(ip) {
			rateLimitedTotal.Inc()
			w.Header().Set("Retry-After", strconv.Itoa(rl.retryAfter()))
			respond.Error(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// retryAfter is the number of whole seconds until one token is refilled.
func (rl *RateLimiter) retryAfter() int {
	if rl.limit <= 0 {
		return 1
	}
	return max(1, int(math.Ceil(1/float64(rl.limit))))
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	c, ok := rl.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// Cleanup removes clients idle for longer than the idle timeout and returns
// how many were removed.
func (rl *RateLimiter) Cleanup() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.idleTimeout)
	removed := 0
	for ip, c := range rl.clients {
		if c.lastSeen.Before(cutoff) {
			delete(rl.clients, ip)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked clients.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

// Run calls Cleanup every idle timeout until ctx is canceled.
func (rl *RateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(rl.idleTimeout)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := rl.Cleanup(); n > 0 {
				slog.Debug("rate limiter cleanup",
					slog.Int("removed", n),
					slog.Int("remaining", rl.Len()))
			}
		}
	}
}

// clientIP extracts the client IP address from the request.
func (rl *RateLimiter) clientIP(r *http.Request) string {
	if rl.TrustForwardedFor {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
				return ip.String()
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
