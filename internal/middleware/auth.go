package middleware

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"swiftAid/internal/api/respond"
	"swiftAid/internal/domain"
	"swiftAid/pkg/e"
)

type ActorResolver interface {
	Resolve(token string) (domain.Actor, error)
}

type actorKey struct{}

func WithActor(ctx context.Context, a domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

func ActorFrom(ctx context.Context) (domain.Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(domain.Actor)
	return a, ok
}

// BearerToken reads the Authorization header, falling back to the token
// query parameter that browsers must use for WebSocket upgrades.
func BearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if tok, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(tok)
		}
		return ""
	}
	return r.URL.Query().Get("token")
}

// Authenticate resolves the bearer token into an actor or answers 401.
func Authenticate(resolver ActorResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := resolver.Resolve(BearerToken(r))
			if err != nil {
				logger.Debug("authentication failed", slog.String("path", r.URL.Path), slog.Any("error", err))
				respond.Error(w, logger, e.ErrUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// APIKeyMiddleware guards operator routes with a static X-API-Key.
func APIKeyMiddleware(key string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("X-API-Key")
			if key == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				logger.Warn("invalid api key", slog.String("remote", r.RemoteAddr))
				respond.Error(w, logger, e.ErrUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
