// Package policy decides which blog mutations an acting user may perform.
// Every function is pure: it looks only at its arguments.
package policy

import (
	"blog-backend/internal/apperrors"
	"blog-backend/internal/models"
)

// Authenticated rejects requests that carry no identity.
func Authenticated(actor *models.User) error {
	if actor == nil {
		return apperrors.ErrNotAuthenticated
	}
	return nil
}

// CanCreate allows any authenticated user to create a blog they own.
func CanCreate(actor *models.User) error {
	return Authenticated(actor)
}

// EditFilter returns the filter an edit must be applied through. The store
// matches id and owner together in one conditional update, so a missing
// blog and someone else's blog are indistinguishable to the caller.
func EditFilter(actor *models.User, blogID string) (models.BlogFilter, error) {
	if actor == nil {
		return models.BlogFilter{}, apperrors.ErrNotAuthenticated
	}
	return models.BlogFilter{ID: blogID, OwnerID: actor.ID}, nil
}

// CanDelete allows deletion only by the blog's author. Blogs whose author
// no longer exists can't be deleted by anyone.
func CanDelete(actor *models.User, blog *models.Blog) error {
	if err := Authenticated(actor); err != nil {
		return err
	}
	if !blog.OwnedBy(actor.ID) {
		return apperrors.ErrForbidden
	}
	return nil
}
