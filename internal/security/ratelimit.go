package security

import (
	"net/http"
	"sync"
	"time"
)

// RateLimiter is a fixed-window per-client limiter used to slow down
// credential guessing on the auth endpoints.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*window
	limit   int
	period  time.Duration
}

type window struct {
	count   int
	started time.Time
}

// NewRateLimiter allows limit requests per client per period
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*window),
		limit:   limit,
		period:  period,
	}
}

// Allow reports whether a request from the given client key is within the limit
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.clients[key]
	if !ok || now.Sub(w.started) >= rl.period {
		rl.clients[key] = &window{count: 1, started: now}
		rl.evictStale(now)
		return true
	}

	if w.count >= rl.limit {
		return false
	}
	w.count++
	return true
}

// evictStale drops windows older than two periods; called with the lock held
func (rl *RateLimiter) evictStale(now time.Time) {
	for key, w := range rl.clients {
		if now.Sub(w.started) > rl.period*2 {
			delete(rl.clients, key)
		}
	}
}

// ClientIP extracts the client IP from the request
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}
