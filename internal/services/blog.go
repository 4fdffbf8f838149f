package services

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"blog-backend/internal/apperrors"
	"blog-backend/internal/models"
	"blog-backend/internal/policy"
	"blog-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// BlogService serves blog queries and applies authorized mutations
type BlogService struct {
	blogs  BlogStore
	events EventPublisher
	now    func() time.Time
}

// NewBlogService creates a new blog service. events may be nil.
func NewBlogService(blogs BlogStore, events EventPublisher) *BlogService {
	return &BlogService{
		blogs:  blogs,
		events: events,
		now:    time.Now,
	}
}

// CreateBlogInput is the addBlog request. Author and CreatedAt are accepted
// for compatibility and ignored: the author is always the acting user and
// the timestamp always comes from the server clock.
type CreateBlogInput struct {
	Title       string  `json:"title" validate:"required,min=3,max=50"`
	Author      *string `json:"author,omitempty"`
	CreatedAt   *string `json:"createdAt,omitempty"`
	Image       string  `json:"image" validate:"required,max=500"`
	Description string  `json:"description" validate:"required,min=3,max=30000"`
}

// EditBlogInput is the editBlog request
type EditBlogInput struct {
	Title       string `json:"title" validate:"required,max=50"`
	Image       string `json:"image" validate:"required,max=500"`
	Description string `json:"description" validate:"required,max=30000"`
}

// Count returns the number of blogs
func (s *BlogService) Count(ctx context.Context) (int, error) {
	n, err := s.blogs.Count(ctx)
	if err != nil {
		return 0, apperrors.ErrOperationFailed.WithCause(err)
	}
	return n, nil
}

// List returns all blogs, newest first, with authors populated
func (s *BlogService) List(ctx context.Context) ([]*models.Blog, error) {
	blogs, err := s.blogs.List(ctx)
	if err != nil {
		return nil, apperrors.ErrOperationFailed.WithCause(err)
	}
	return blogs, nil
}

// Find returns the blog with the given id, or nil if there is none
func (s *BlogService) Find(ctx context.Context, id string) (*models.Blog, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, apperrors.ErrOperationFailed.WithCause(err).WithDetails(apperrors.InvalidArgs(map[string]any{"id": id}))
	}
	return blog, nil
}

// Create stores a new blog owned by actor and links it to actor's blog list
func (s *BlogService) Create(ctx context.Context, actor *models.User, in CreateBlogInput) (*models.Blog, error) {
	if err := policy.CanCreate(actor); err != nil {
		recordBlogMutation("create", resultRejected)
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Image = strings.TrimSpace(in.Image)
	in.Description = strings.TrimSpace(in.Description)
	args := map[string]any{"title": in.Title, "image": in.Image, "description": in.Description}

	if err := validateInput(in, args); err != nil {
		recordBlogMutation("create", resultRejected)
		return nil, err
	}

	now := s.now()
	authorID := actor.ID
	blog := &models.Blog{
		ID:          uuid.New().String(),
		Title:       in.Title,
		AuthorID:    &authorID,
		Image:       in.Image,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.blogs.CreateOwned(ctx, blog); err != nil {
		recordBlogMutation("create", resultFailed)
		return nil, apperrors.ErrOperationFailed.WithCause(err).WithDetails(apperrors.InvalidArgs(args))
	}

	author := *actor
	author.PasswordHash = ""
	author.BlogIDs = append(slices.Clone(actor.BlogIDs), blog.ID)
	blog.Author = &author

	recordBlogMutation("create", resultSuccess)
	log.Info().
		Str("user_id", actor.ID).
		Str("blog_id", blog.ID).
		Msg("Blog created")

	s.publish(FeedBlogCreated, blog)
	return blog, nil
}

// Edit updates title, image and description of a blog actor owns. It
// returns nil without error when no blog with that id belongs to actor.
func (s *BlogService) Edit(ctx context.Context, actor *models.User, id string, in EditBlogInput) (*models.Blog, error) {
	filter, err := policy.EditFilter(actor, id)
	if err != nil {
		recordBlogMutation("edit", resultRejected)
		return nil, err
	}
	if err := validateID(id); err != nil {
		recordBlogMutation("edit", resultRejected)
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Image = strings.TrimSpace(in.Image)
	in.Description = strings.TrimSpace(in.Description)
	args := map[string]any{"id": id, "title": in.Title, "image": in.Image, "description": in.Description}

	if err := validateInput(in, args); err != nil {
		recordBlogMutation("edit", resultRejected)
		return nil, err
	}

	blog, err := s.blogs.UpdateWhere(ctx, filter, models.BlogUpdate{
		Title:       in.Title,
		Image:       in.Image,
		Description: in.Description,
		UpdatedAt:   s.now(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			recordBlogMutation("edit", resultRejected)
			return nil, nil
		}
		recordBlogMutation("edit", resultFailed)
		return nil, apperrors.ErrOperationFailed.WithCause(err).WithDetails(apperrors.InvalidArgs(args))
	}

	author := *actor
	author.PasswordHash = ""
	blog.Author = &author

	recordBlogMutation("edit", resultSuccess)
	log.Info().
		Str("user_id", actor.ID).
		Str("blog_id", blog.ID).
		Msg("Blog edited")

	s.publish(FeedBlogEdited, blog)
	return blog, nil
}

// Delete removes a blog actor owns and returns it as it was. It returns nil
// without error when the blog does not exist, and an AuthorizationError when
// it belongs to someone else.
func (s *BlogService) Delete(ctx context.Context, actor *models.User, id string) (*models.Blog, error) {
	if err := policy.Authenticated(actor); err != nil {
		recordBlogMutation("delete", resultRejected)
		return nil, err
	}
	if err := validateID(id); err != nil {
		recordBlogMutation("delete", resultRejected)
		return nil, err
	}

	args := apperrors.InvalidArgs(map[string]any{"id": id})

	blog, err := s.blogs.DeleteWhere(ctx, id, func(b *models.Blog) error {
		return policy.CanDelete(actor, b)
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			recordBlogMutation("delete", resultRejected)
			return nil, nil
		case errors.Is(err, apperrors.ErrForbidden):
			recordBlogMutation("delete", resultRejected)
			log.Warn().
				Str("user_id", actor.ID).
				Str("blog_id", id).
				Msg("Blog delete denied")
			return nil, apperrors.ErrForbidden.WithDetails(args)
		default:
			recordBlogMutation("delete", resultFailed)
			return nil, apperrors.ErrOperationFailed.WithCause(err).WithDetails(args)
		}
	}

	recordBlogMutation("delete", resultSuccess)
	log.Info().
		Str("user_id", actor.ID).
		Str("blog_id", blog.ID).
		Msg("Blog deleted")

	s.publish(FeedBlogDeleted, blog)
	return blog, nil
}

func (s *BlogService) publish(eventType string, blog *models.Blog) {
	if s.events != nil {
		s.events.Publish(eventType, blog)
	}
}
