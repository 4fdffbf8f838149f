package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"blog-backend/internal/apperrors"
	"blog-backend/internal/models"

	"github.com/rs/zerolog/log"
)

type contextKey string

const userKey contextKey = "user"

// SessionResolver recovers the acting user from an Authorization header
type SessionResolver interface {
	Resolve(ctx context.Context, header string) (*models.User, error)
}

// Session resolves the bearer token of every request. Anonymous requests
// pass through with no user in the context; a token that is present but
// invalid ends the request with 401.
func Session(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolver.Resolve(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				log.Warn().Err(err).Str("path", r.URL.Path).Msg("Session rejected")
				respondError(w, err)
				return
			}

			if user == nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser returns a context carrying the acting user
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUser extracts the acting user from context, or nil for anonymous requests
func GetUser(ctx context.Context) *models.User {
	user, ok := ctx.Value(userKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// respondError sends an error response
func respondError(w http.ResponseWriter, err error) {
	de, ok := apperrors.As(err)
	if !ok {
		de = apperrors.ErrInvalidToken
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(de.HTTPStatus())
	json.NewEncoder(w).Encode(map[string]string{"code": de.Code(), "message": de.Message()})
}
