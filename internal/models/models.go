package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// User represents a registered author. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	BlogIDs      []string  `json:"blogs"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// Blog represents a post. AuthorID is nil when the author no longer exists.
type Blog struct {
	ID          string
	Title       string
	AuthorID    *string
	Author      *User
	Image       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnedBy reports whether the blog's author is the given user.
func (b *Blog) OwnedBy(userID string) bool {
	return b.AuthorID != nil && *b.AuthorID == userID
}

type blogJSON struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      *User  `json:"author"`
	CreatedAt   string `json:"createdAt"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

// MarshalJSON renders the blog in the shape clients read, with createdAt
// in the D/M/YYYY compatibility format.
func (b Blog) MarshalJSON() ([]byte, error) {
	return json.Marshal(blogJSON{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		CreatedAt:   FormatCreatedAt(b.CreatedAt),
		Image:       b.Image,
		Description: b.Description,
	})
}

// BlogFilter selects a single blog only when it belongs to OwnerID.
type BlogFilter struct {
	ID      string
	OwnerID string
}

// BlogUpdate holds the only fields an edit may change.
type BlogUpdate struct {
	Title       string
	Image       string
	Description string
	UpdatedAt   time.Time
}

// FormatCreatedAt renders a timestamp as D/M/YYYY with an unpadded day of
// month and a zero-based month, the format existing clients parse.
func FormatCreatedAt(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month())-1, t.Year())
}
