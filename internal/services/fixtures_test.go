package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"blog-backend/internal/models"
	"blog-backend/internal/repository"
)

const testSecret = "test-secret-that-is-at-least-32-bytes-long"

// plainHasher skips bcrypt's cost so tests stay fast
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "plain:" + password, nil
}

func (plainHasher) Compare(hash string, password string) error {
	if hash != "plain:"+password {
		return errors.New("password mismatch")
	}
	return nil
}

type mockUserStore struct {
	CreateFunc     func(ctx context.Context, user *models.User) error
	GetByIDFunc    func(ctx context.Context, id string) (*models.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*models.User, error)
}

func (m *mockUserStore) Create(ctx context.Context, user *models.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, repository.ErrNotFound
}

type mockBlogStore struct {
	CountFunc       func(ctx context.Context) (int, error)
	ListFunc        func(ctx context.Context) ([]*models.Blog, error)
	GetByIDFunc     func(ctx context.Context, id string) (*models.Blog, error)
	CreateOwnedFunc func(ctx context.Context, blog *models.Blog) error
	UpdateWhereFunc func(ctx context.Context, filter models.BlogFilter, upd models.BlogUpdate) (*models.Blog, error)
	DeleteWhereFunc func(ctx context.Context, id string, authorize func(*models.Blog) error) (*models.Blog, error)
}

func (m *mockBlogStore) Count(ctx context.Context) (int, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *mockBlogStore) List(ctx context.Context) ([]*models.Blog, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockBlogStore) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockBlogStore) CreateOwned(ctx context.Context, blog *models.Blog) error {
	if m.CreateOwnedFunc != nil {
		return m.CreateOwnedFunc(ctx, blog)
	}
	return nil
}

func (m *mockBlogStore) UpdateWhere(ctx context.Context, filter models.BlogFilter, upd models.BlogUpdate) (*models.Blog, error) {
	if m.UpdateWhereFunc != nil {
		return m.UpdateWhereFunc(ctx, filter, upd)
	}
	return nil, repository.ErrNotFound
}

func (m *mockBlogStore) DeleteWhere(ctx context.Context, id string, authorize func(*models.Blog) error) (*models.Blog, error) {
	if m.DeleteWhereFunc != nil {
		return m.DeleteWhereFunc(ctx, id, authorize)
	}
	return nil, repository.ErrNotFound
}

type publishedEvent struct {
	eventType string
	blogID    string
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(eventType string, blog *models.Blog) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{eventType: eventType, blogID: blog.ID})
}

func (p *recordingPublisher) Events() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.events...)
}

// testEnv wires the services over one memory store
type testEnv struct {
	store    *repository.MemoryStore
	tokens   *TokenIssuer
	users    *UserService
	sessions *SessionResolver
	blogs    *BlogService
	events   *recordingPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := repository.NewMemoryStore()
	tokens := NewTokenIssuer(testSecret, time.Hour)
	events := &recordingPublisher{}

	return &testEnv{
		store:    store,
		tokens:   tokens,
		users:    NewUserService(store.Users(), plainHasher{}, tokens),
		sessions: NewSessionResolver(tokens, store.Users()),
		blogs:    NewBlogService(store.Blogs(), events),
		events:   events,
	}
}

// register creates a user and returns it as the session resolver would
func (e *testEnv) register(t *testing.T, username string) *models.User {
	t.Helper()

	u, err := e.users.Register(context.Background(), RegisterInput{
		Username:        username,
		Email:           strings.ToLower(username) + "@x.com",
		Password:        "pw",
		ConfirmPassword: "pw",
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}

	stored, err := e.store.Users().GetByID(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("get %s: %v", username, err)
	}
	stored.PasswordHash = ""
	return stored
}

func (e *testEnv) addBlog(t *testing.T, actor *models.User, title string) *models.Blog {
	t.Helper()

	b, err := e.blogs.Create(context.Background(), actor, CreateBlogInput{
		Title:       title,
		Image:       "http://x/i.png",
		Description: "abc",
	})
	if err != nil {
		t.Fatalf("create blog %q: %v", title, err)
	}
	return b
}
