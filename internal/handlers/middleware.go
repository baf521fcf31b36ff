package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"pathway/internal/security"
	"pathway/internal/service"
)

type contextKey string

const externalIDKey contextKey = "externalID"

// Middleware carries the dependencies shared by the request filters
type Middleware struct {
	auth    *service.AuthService
	tokens  *security.TokenIssuer
	limiter *security.RateLimiter
}

func NewMiddleware(auth *service.AuthService, tokens *security.TokenIssuer, limiter *security.RateLimiter) *Middleware {
	return &Middleware{
		auth:    auth,
		tokens:  tokens,
		limiter: limiter,
	}
}

// RequireAuth verifies the bearer token and checks that the session it names
// is still logged in. The external ID is placed on the request context.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respondWithError(w, http.StatusUnauthorized, "missing bearer token", nil)
			return
		}

		externalID, err := m.tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "invalid token", err)
			return
		}

		// A valid token is not enough after logout
		if !m.auth.IsAuthenticated(externalID) {
			respondWithError(w, http.StatusUnauthorized, "not logged in", nil)
			return
		}

		ctx := context.WithValue(r.Context(), externalIDKey, externalID)
		next(w, r.WithContext(ctx))
	}
}

// RateLimit rejects clients that exceed the per-window request budget
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := security.ClientIP(r)
		if !m.limiter.Allow(key) {
			log.Printf("Rate limit exceeded for %s on %s", key, r.URL.Path)
			respondWithError(w, http.StatusTooManyRequests, "too many requests", nil)
			return
		}
		next(w, r)
	}
}

// Logging logs every request with its duration
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// ExternalID returns the authenticated external ID set by RequireAuth
func ExternalID(r *http.Request) string {
	id, _ := r.Context().Value(externalIDKey).(string)
	return id
}
