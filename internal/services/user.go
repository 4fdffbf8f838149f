package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"blog-backend/internal/apperrors"
	"blog-backend/internal/models"
	"blog-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// UserService registers users and exchanges credentials for session tokens
type UserService struct {
	users  UserStore
	hasher PasswordHasher
	tokens *TokenIssuer
	now    func() time.Time
}

// NewUserService creates a new user service
func NewUserService(users UserStore, hasher PasswordHasher, tokens *TokenIssuer) *UserService {
	return &UserService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
	}
}

// RegisterInput is the createUser request
type RegisterInput struct {
	Username        string `json:"username" validate:"required,max=30"`
	Email           string `json:"email" validate:"required,max=200,email"`
	Password        string `json:"password" validate:"required,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

func (in RegisterInput) echo() map[string]any {
	return map[string]any{"username": in.Username, "email": in.Email}
}

// LoginInput is the login request
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a user. The returned user never carries the password hash.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if in.Password != in.ConfirmPassword {
		recordRegistration(resultRejected)
		return nil, apperrors.ErrPasswordMismatch
	}

	if err := validateInput(in, in.echo()); err != nil {
		recordRegistration(resultRejected)
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		recordRegistration(resultFailed)
		return nil, apperrors.ErrOperationFailed.WithCause(err).WithDetails(apperrors.InvalidArgs(in.echo()))
	}

	now := s.now()
	user := &models.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		BlogIDs:      []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			recordRegistration(resultRejected)
			return nil, apperrors.ErrDuplicateUser.WithDetails(apperrors.InvalidArgs(in.echo()))
		}
		recordRegistration(resultFailed)
		return nil, apperrors.ErrOperationFailed.WithCause(err).WithDetails(apperrors.InvalidArgs(in.echo()))
	}

	recordRegistration(resultSuccess)
	log.Info().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Msg("User registered")

	user.PasswordHash = ""
	return user, nil
}

// Login verifies credentials and returns a signed session token. An unknown
// email and a wrong password produce the same error.
func (s *UserService) Login(ctx context.Context, in LoginInput) (string, error) {
	email := strings.TrimSpace(in.Email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			recordLogin(resultRejected)
			return "", apperrors.ErrInvalidCredentials
		}
		recordLogin(resultFailed)
		return "", apperrors.ErrOperationFailed.WithCause(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, in.Password); err != nil {
		recordLogin(resultRejected)
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		recordLogin(resultFailed)
		return "", apperrors.ErrOperationFailed.WithCause(err)
	}

	recordLogin(resultSuccess)
	log.Info().Str("user_id", user.ID).Msg("User logged in")

	return token, nil
}
