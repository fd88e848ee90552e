package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/permahub/api/internal/domain"
	jwtinfra "github.com/permahub/api/internal/infrastructure/jwt"
)

type contextKey string

const identityKey contextKey = "identity"

const bearerPrefix = "Bearer "

type accessDecoder interface {
	DecodeAccess(token string) (*jwtinfra.Claims, error)
}

type identityStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Authenticate tries to resolve the caller's identity from the Authorization
// header before the request reaches business logic. It soft-fails: any
// missing, malformed, expired or unresolvable token is logged and the request
// continues unauthenticated. RequireAuth, not this middleware, decides
// whether that is fatal for a route.
func Authenticate(decoder accessDecoder, users identityStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := IdentityFromContext(r.Context()); ok {
				// Already resolved by an earlier pass.
				next.ServeHTTP(w, r)
				return
			}
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}
			if !strings.HasPrefix(header, bearerPrefix) {
				slog.Warn("authorization header does not begin with Bearer")
				next.ServeHTTP(w, r)
				return
			}
			claims, err := decoder.DecodeAccess(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				if domain.KindOf(err) == domain.KindTokenExpired {
					slog.Info("access token has expired")
				} else {
					slog.Warn("unable to decode access token", "err", err)
				}
				next.ServeHTTP(w, r)
				return
			}
			u, err := users.GetByEmail(r.Context(), claims.Subject)
			if err != nil {
				slog.Warn("token subject has no identity", "subject", claims.Subject)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), u)))
		})
	}
}

// ContextWithIdentity returns ctx carrying u as the authenticated identity.
func ContextWithIdentity(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, identityKey, u)
}

// IdentityFromContext extracts the authenticated user from the request
// context.
func IdentityFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(identityKey).(*domain.User)
	return u, ok
}

// RequireAuth gates a route on a resolved identity. Requests that reached it
// unauthenticated are rejected here, uniformly, with a 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFromContext(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, string(domain.KindUnauthenticated), "Full authentication is required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
