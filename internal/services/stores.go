package services

import (
	"context"

	"blog-backend/internal/models"
)

// UserStore persists users. Create returns repository.ErrDuplicate when the
// username or email is taken; lookups return repository.ErrNotFound.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// BlogStore persists blogs and keeps each author's blog list in step.
type BlogStore interface {
	Count(ctx context.Context) (int, error)
	List(ctx context.Context) ([]*models.Blog, error)
	GetByID(ctx context.Context, id string) (*models.Blog, error)
	CreateOwned(ctx context.Context, blog *models.Blog) error
	UpdateWhere(ctx context.Context, filter models.BlogFilter, upd models.BlogUpdate) (*models.Blog, error)
	DeleteWhere(ctx context.Context, id string, authorize func(*models.Blog) error) (*models.Blog, error)
}
