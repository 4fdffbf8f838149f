package repository

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"blog-backend/internal/models"
)

// MemoryStore keeps users and blogs in process memory. It enforces the same
// unique constraints and per-operation atomicity as the Postgres store and
// is selected with the "memory" database driver.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]*models.User
	blogs map[string]*models.Blog
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]*models.User),
		blogs: make(map[string]*models.Blog),
	}
}

// Users returns the user repository view of the store
func (s *MemoryStore) Users() *MemoryUserRepository {
	return &MemoryUserRepository{s: s}
}

// Blogs returns the blog repository view of the store
func (s *MemoryStore) Blogs() *MemoryBlogRepository {
	return &MemoryBlogRepository{s: s}
}

// DeleteUser removes a user and detaches their blogs, as ON DELETE SET NULL does.
func (s *MemoryStore) DeleteUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, id)
	for _, b := range s.blogs {
		if b.OwnedBy(id) {
			b.AuthorID = nil
		}
	}
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.BlogIDs = slices.Clone(u.BlogIDs)
	if c.BlogIDs == nil {
		c.BlogIDs = []string{}
	}
	return &c
}

// blogView copies b and populates its author. Callers hold s.mu.
func (s *MemoryStore) blogView(b *models.Blog) *models.Blog {
	c := *b
	if b.AuthorID != nil {
		id := *b.AuthorID
		c.AuthorID = &id
		if u, ok := s.users[id]; ok {
			author := cloneUser(u)
			author.PasswordHash = ""
			c.Author = author
		}
	}
	return &c
}

// MemoryUserRepository is the user side of a MemoryStore
type MemoryUserRepository struct {
	s *MemoryStore
}

func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; ok {
		return ErrDuplicate
	}
	for _, u := range r.s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return ErrDuplicate
		}
	}

	stored := cloneUser(user)
	stored.BlogIDs = []string{}
	r.s.users[user.ID] = stored
	return nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, ErrNotFound
}

// MemoryBlogRepository is the blog side of a MemoryStore
type MemoryBlogRepository struct {
	s *MemoryStore
}

func (r *MemoryBlogRepository) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.blogs), nil
}

func (r *MemoryBlogRepository) List(_ context.Context) ([]*models.Blog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	blogs := make([]*models.Blog, 0, len(r.s.blogs))
	for _, b := range r.s.blogs {
		blogs = append(blogs, r.s.blogView(b))
	}
	sort.SliceStable(blogs, func(i, j int) bool {
		if blogs[i].CreatedAt.Equal(blogs[j].CreatedAt) {
			return blogs[i].ID > blogs[j].ID
		}
		return blogs[i].CreatedAt.After(blogs[j].CreatedAt)
	})
	return blogs, nil
}

func (r *MemoryBlogRepository) GetByID(_ context.Context, id string) (*models.Blog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.blogs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r.s.blogView(b), nil
}

func (r *MemoryBlogRepository) CreateOwned(_ context.Context, blog *models.Blog) error {
	if blog.AuthorID == nil {
		return fmt.Errorf("failed to create blog: author is required")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	author, ok := r.s.users[*blog.AuthorID]
	if !ok {
		return ErrNotFound
	}
	if _, exists := r.s.blogs[blog.ID]; exists {
		return ErrDuplicate
	}

	stored := *blog
	authorID := *blog.AuthorID
	stored.AuthorID = &authorID
	stored.Author = nil
	r.s.blogs[blog.ID] = &stored
	author.BlogIDs = append(author.BlogIDs, blog.ID)
	author.UpdatedAt = blog.UpdatedAt
	return nil
}

func (r *MemoryBlogRepository) UpdateWhere(_ context.Context, filter models.BlogFilter, upd models.BlogUpdate) (*models.Blog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.blogs[filter.ID]
	if !ok || !b.OwnedBy(filter.OwnerID) {
		return nil, ErrNotFound
	}

	b.Title = upd.Title
	b.Image = upd.Image
	b.Description = upd.Description
	b.UpdatedAt = upd.UpdatedAt

	updated := *b
	authorID := *b.AuthorID
	updated.AuthorID = &authorID
	return &updated, nil
}

func (r *MemoryBlogRepository) DeleteWhere(_ context.Context, id string, authorize func(*models.Blog) error) (*models.Blog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.blogs[id]
	if !ok {
		return nil, ErrNotFound
	}

	snapshot := r.s.blogView(b)
	if err := authorize(snapshot); err != nil {
		return nil, err
	}

	if b.AuthorID != nil {
		if author, ok := r.s.users[*b.AuthorID]; ok {
			author.BlogIDs = slices.DeleteFunc(author.BlogIDs, func(blogID string) bool {
				return blogID == id
			})
		}
	}
	delete(r.s.blogs, id)

	return snapshot, nil
}
