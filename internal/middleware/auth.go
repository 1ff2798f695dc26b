package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"sheetpress/internal/auth"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// SessionKey is the context key for the verified session.
const SessionKey contextKey = "session"

// LoadSession verifies the request's session token (cookie or bearer
// header) against the live admin table and stores the session in the
// request context. It does not enforce authentication; downstream
// handlers decide via SessionFromCtx.
func LoadSession(manager *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.TokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := manager.Verify(r.Context(), token)
			if err != nil {
				// Backing store failure: log and treat the request as
				// unauthenticated.
				slog.Error("session verify failed", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if sess != nil {
				ctx := context.WithValue(r.Context(), SessionKey, sess)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession returns 401 for requests without a verified session.
// Must be applied after LoadSession in the middleware chain.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionFromCtx(r.Context()) == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// SessionFromCtx extracts the verified session from the request context.
// Returns nil if the request is unauthenticated.
func SessionFromCtx(ctx context.Context) *auth.Session {
	sess, _ := ctx.Value(SessionKey).(*auth.Session)
	return sess
}
