package services

import (
	"context"
	"errors"
	"strings"

	"blog-backend/internal/apperrors"
	"blog-backend/internal/models"
	"blog-backend/internal/repository"
)

const bearerPrefix = "bearer "

// SessionResolver turns an Authorization header into the acting user of a
// single request. Nothing is cached between requests.
type SessionResolver struct {
	tokens *TokenIssuer
	users  UserStore
}

// NewSessionResolver creates a new session resolver
func NewSessionResolver(tokens *TokenIssuer, users UserStore) *SessionResolver {
	return &SessionResolver{tokens: tokens, users: users}
}

// Resolve returns nil without error for anonymous requests: no header, or a
// scheme other than bearer. A bearer token that fails verification, or names
// a user that no longer exists, is an AuthenticationError.
func (r *SessionResolver) Resolve(ctx context.Context, header string) (*models.User, error) {
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		recordSession("anonymous")
		return nil, nil
	}

	claims, err := r.tokens.Verify(strings.TrimSpace(header[len(bearerPrefix):]))
	if err != nil {
		recordSession(resultRejected)
		return nil, apperrors.ErrInvalidToken.WithCause(err)
	}

	user, err := r.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			recordSession(resultRejected)
			return nil, apperrors.ErrInvalidToken.WithCause(err)
		}
		recordSession(resultFailed)
		return nil, apperrors.ErrOperationFailed.WithCause(err)
	}

	recordSession("authenticated")
	user.PasswordHash = ""
	return user, nil
}
