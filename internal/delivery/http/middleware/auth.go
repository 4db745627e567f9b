package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "announcehub/internal/delivery/http/helpers"
	"announcehub/internal/domain"
)

// contextKey is unexported so other packages cannot collide with our keys.
type contextKey int

const userIDKey contextKey = 0

// SetUserID returns a context carrying the authenticated user ID.
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user ID, if one was set.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// RequireAuth wraps a handler so it only runs for requests carrying a valid
// Bearer token. On success the user ID is placed in the request context; on
// failure the wrapper answers 401 itself.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if raw == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			token, found := strings.CutPrefix(raw, "Bearer ")
			if !found {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "authorization header must use the Bearer scheme")
				return
			}
			token = strings.TrimSpace(token)
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing bearer token")
				return
			}
			userID, err := verifier.Verify(token)
			if err != nil {
				logger.DebugContext(r.Context(), "bearer token rejected", "err", err)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			next(w, r.WithContext(SetUserID(r.Context(), userID)))
		}
	}
}
