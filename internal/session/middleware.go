package session

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/utilities"
)

// Verifier turns a raw token into an identity.
type Verifier interface {
	Verify(token string) (Identity, error)
}

// Authenticate attaches the identity of a valid token (cookie first, then
// "Authorization: Bearer") to the request context. It never rejects: routes
// that need a caller wrap themselves in RequireAuth, and operations that take
// an optional identity read it with FromContext.
func Authenticate(v Verifier, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := tokenFrom(r)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}
			id, err := v.Verify(raw)
			if err != nil {
				logger.Debugw("session token rejected", "path", r.URL.Path, "err", err)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireAuth answers 401 when no identity is attached.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			utilities.Fail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole answers 401 without an identity and 403 when the identity's
// role is not one of roles.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, _ := FromContext(r.Context())
			if _, ok := allowed[id.Role]; !ok {
				utilities.Fail(w, http.StatusForbidden, "Access denied")
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}

func tokenFrom(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	auth := r.Header.Get("Authorization")
	if len(auth) > len("bearer ") && strings.EqualFold(auth[:len("bearer ")], "bearer ") {
		return strings.TrimSpace(auth[len("bearer "):])
	}
	return ""
}
