package http

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"toolrent-backend/internal/logger"
	"toolrent-backend/internal/security"
)

type contextKey string

const usernameKey contextKey = "username"

// UsernameFromContext returns the acting username resolved for the request,
// or the fallback sentinel when middleware did not run.
func UsernameFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(usernameKey).(string); ok && v != "" {
		return v
	}
	return security.FallbackUsername
}

// identityMiddleware resolves the caller's display username from the bearer
// token and stores it in the request context for audit fields.
func identityMiddleware(resolver *security.IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username := resolver.ResolveUsername(r)
			ctx := context.WithValue(r.Context(), usernameKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// loggingMiddleware tags every request with a request ID and logs timing.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		next.ServeHTTP(w, r)
		logger.WithRequest(requestID, r.Method, r.URL.Path).
			Debug("request handled", "duration_ms", time.Since(start).Milliseconds())
	})
}
