package controller

import (
	"ctwatch/pkg/logger"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// limiterIdleTTL is how long an unused client limiter is kept.
	limiterIdleTTL = 5 * time.Minute
	// limiterPruneEvery is the minimum pause between two sweeps of idle limiters.
	limiterPruneEvery = time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	rps   rate.Limit
	burst int
	now   func() time.Time

	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	lastPrune time.Time
}

// NewRateLimiter creates a RateLimiter allowing rps requests per second per client
// with bursts of up to burst requests. A non-positive rps disables limiting.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}

	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
		limiters: make(map[string]*clientLimiter),
	}
}

// Allow reports whether one more request from client may proceed now.
func (l *RateLimiter) Allow(client string) bool {
	if l.rps <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastPrune) > limiterPruneEvery {
		for c, cl := range l.limiters {
			if now.Sub(cl.lastSeen) > limiterIdleTTL {
				delete(l.limiters, c)
			}
		}
		l.lastPrune = now
	}

	cl, ok := l.limiters[client]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.limiters[client] = cl
	}
	cl.lastSeen = now

	return cl.limiter.AllowN(now, 1)
}

// WithRateLimit returns a middleware that rejects requests above the per-client
// budget of l by calling reject instead of the next handler.
func WithRateLimit(l *RateLimiter, reject http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := GetClientIP(r)
			if !l.Allow(client) {
				logger.Warn(r.Context(), "rate limit exceeded", zap.String("client_ip", client))
				w.Header().Set("Retry-After", "1")
				reject(w, r)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
