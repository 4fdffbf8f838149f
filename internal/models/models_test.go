package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestFormatCreatedAt(t *testing.T) {
	testCases := []struct {
		name string
		in   time.Time
		want string
	}{
		{"january is zero", time.Date(2024, time.January, 5, 10, 0, 0, 0, time.UTC), "5/0/2024"},
		{"december is eleven", time.Date(2023, time.December, 31, 23, 59, 0, 0, time.UTC), "31/11/2023"},
		{"converted to utc", time.Date(2024, time.March, 1, 1, 0, 0, 0, time.FixedZone("plus3", 3*3600)), "29/1/2024"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatCreatedAt(tc.in); got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestUserJSONOmitsPasswordHash(t *testing.T) {
	u := User{ID: "u1", Username: "u1", Email: "u1@x.com", PasswordHash: "$2a$12$secret", BlogIDs: []string{}}

	data, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "secret") || strings.Contains(string(data), "password") {
		t.Errorf("password hash leaked: %s", data)
	}
}

func TestBlogOwnedBy(t *testing.T) {
	owner := "u1"
	b := &Blog{AuthorID: &owner}

	if !b.OwnedBy("u1") {
		t.Error("expected blog to be owned by u1")
	}
	if b.OwnedBy("u2") {
		t.Error("expected blog not to be owned by u2")
	}
	if (&Blog{}).OwnedBy("u1") {
		t.Error("expected ownerless blog to be owned by nobody")
	}
}

func TestBlogMarshalJSON(t *testing.T) {
	owner := "u1"
	b := &Blog{
		ID:          "b1",
		Title:       "Hello World!!",
		AuthorID:    &owner,
		Author:      &User{ID: "u1", Username: "u1", Email: "u1@x.com", PasswordHash: "hash", BlogIDs: []string{"b1"}},
		Image:       "http://x/i.png",
		Description: "abc",
		CreatedAt:   time.Date(2024, time.June, 9, 8, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["createdAt"] != "9/5/2024" {
		t.Errorf("expected createdAt 9/5/2024, got %v", got["createdAt"])
	}
	author, ok := got["author"].(map[string]any)
	if !ok || author["username"] != "u1" {
		t.Errorf("expected populated author, got %v", got["author"])
	}
	if strings.Contains(string(data), "hash") {
		t.Errorf("password hash leaked: %s", data)
	}

	data, err = json.Marshal(Blog{ID: "b2"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"author":null`) {
		t.Errorf("expected null author, got %s", data)
	}
}
