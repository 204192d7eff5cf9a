package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "digieventos/internal/delivery/http/helpers"
	"digieventos/internal/domain"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller extracted from the access token.
type Identity struct {
	UserID string
	Role   string
}

// SetIdentity returns a context with the caller identity set. Used by auth middleware.
func SetIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the authenticated caller from the context, if present.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// RequireAuth returns a wrapper that validates the Bearer access token and sets
// the caller identity in the request context. If the token is missing, invalid,
// or not an access token, it responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			claims, err := verifier.Verify(token)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			if claims.TokenType != domain.TokenTypeAccess {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "token is not an access token")
				return
			}
			r = r.WithContext(SetIdentity(r.Context(), Identity{UserID: claims.UserID, Role: claims.Role}))
			next(w, r)
		}
	}
}

// RequireRole returns a wrapper that responds with 403 unless the caller's
// role is one of the given roles. It must run inside RequireAuth.
func RequireRole(roles ...string) func(http.HandlerFunc) http.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
				return
			}
			if _, ok := allowed[id.Role]; !ok {
				h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "insufficient role")
				return
			}
			next(w, r)
		}
	}
}
