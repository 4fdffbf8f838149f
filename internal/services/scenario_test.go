package services

import (
	"context"
	"errors"
	"testing"

	"blog-backend/internal/apperrors"
	"blog-backend/internal/models"
)

// TestBlogLifecycle walks one user from registration to deleting their blog
func TestBlogLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u1, err := env.users.Register(ctx, RegisterInput{Username: "u1", Email: "u1@x.com", Password: "pw", ConfirmPassword: "pw"})
	if err != nil {
		t.Fatalf("register u1: %v", err)
	}

	_, err = env.users.Register(ctx, RegisterInput{Username: "u1-again", Email: "u1@x.com", Password: "pw", ConfirmPassword: "pw"})
	if apperrors.KindOf(err) != apperrors.KindConflict {
		t.Fatalf("expected conflict on duplicate email, got %v", err)
	}

	t1, err := env.users.Login(ctx, LoginInput{Email: "u1@x.com", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	actor, err := env.sessions.Resolve(ctx, "Bearer "+t1)
	if err != nil || actor == nil {
		t.Fatalf("resolve t1: %v", err)
	}

	p1, err := env.blogs.Create(ctx, actor, CreateBlogInput{Title: "Hello World!!", Image: "http://x/i.png", Description: "abc"})
	if err != nil {
		t.Fatalf("add blog: %v", err)
	}
	if !p1.OwnedBy(u1.ID) {
		t.Fatalf("expected p1 owned by u1, got %v", p1.AuthorID)
	}

	edited, err := env.blogs.Edit(ctx, actor, p1.ID, EditBlogInput{Title: "Hi", Image: p1.Image, Description: p1.Description})
	if err != nil || edited == nil {
		t.Fatalf("edit blog: %+v (%v)", edited, err)
	}
	if edited.Title != "Hi" || !edited.OwnedBy(u1.ID) {
		t.Errorf("unexpected edit result %+v", edited)
	}

	forged, err := env.tokens.Issue(&models.User{ID: "9a7c8d1e-2b3f-4a5b-8c6d-7e8f9a0b1c2d", Username: "nobody"})
	if err != nil {
		t.Fatalf("issue forged token: %v", err)
	}
	stranger, err := env.sessions.Resolve(ctx, "Bearer "+forged)
	if err == nil {
		_, err = env.blogs.Delete(ctx, stranger, p1.ID)
	}
	if kind := apperrors.KindOf(err); kind != apperrors.KindAuthentication && kind != apperrors.KindAuthorization {
		t.Fatalf("expected authentication or authorization error, got %v", err)
	}
	if found, _ := env.blogs.Find(ctx, p1.ID); found == nil {
		t.Fatal("p1 must survive the forged delete")
	}

	deleted, err := env.blogs.Delete(ctx, actor, p1.ID)
	if err != nil || deleted == nil {
		t.Fatalf("delete blog: %+v (%v)", deleted, err)
	}

	found, err := env.blogs.Find(ctx, p1.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found != nil {
		t.Errorf("expected p1 gone, got %+v", found)
	}

	if _, err := env.blogs.Delete(ctx, nil, p1.ID); !errors.Is(err, apperrors.ErrNotAuthenticated) {
		t.Errorf("expected anonymous delete to be rejected, got %v", err)
	}
}
