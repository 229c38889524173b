package chi

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterConfig configures the per-client limiter.
type RateLimiterConfig struct {
	RequestsPerSecond float64
	Burst             int
	// IdleAfter drops a client's limiter after this long without requests.
	IdleAfter time.Duration
}

// RateLimiter provides per-client rate limiting keyed by client IP.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	rate    rate.Limit
	burst   int
	idle    time.Duration
	now     func() time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter. Call Run to evict idle clients.
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.IdleAfter <= 0 {
		cfg.IdleAfter = 5 * time.Minute
	}
	return &RateLimiter{
		clients: make(map[string]*clientLimiter),
		rate:    rate.Limit(cfg.RequestsPerSecond),
		burst:   cfg.Burst,
		idle:    cfg.IdleAfter,
		now:     time.Now,
	}
}

// Allow reports whether a request from client may proceed.
func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	c, ok := rl.clients[client]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.clients[client] = c
	}
	c.lastSeen = rl.now()
	rl.mu.Unlock()

	return c.limiter.Allow()
}

// Run evicts idle clients until ctx is cancelled.
func (rl *RateLimiter) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			rl.evict()
		}
	}
}

func (rl *RateLimiter) evict() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	threshold := rl.now().Add(-rl.idle)
	for ip, c := range rl.clients {
		if c.lastSeen.Before(threshold) {
			delete(rl.clients, ip)
		}
	}
}

// Middleware rejects requests over the limit with 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(clientIP(r)) {
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, codeRateLimited, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the client IP, preferring proxy headers.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
