package handlers

import (
	"net/http"

	"blog-backend/internal/apperrors"
	"blog-backend/internal/middleware"
	"blog-backend/internal/services"

	"github.com/go-chi/chi/v5"
)

// BlogHandler handles blog queries and mutations
type BlogHandler struct {
	blogService *services.BlogService
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(blogService *services.BlogService) *BlogHandler {
	return &BlogHandler{
		blogService: blogService,
	}
}

// CountResponse carries the number of blogs
type CountResponse struct {
	Count int `json:"count"`
}

// Count handles GET /api/v1/blogs/count
func (h *BlogHandler) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.blogService.Count(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, CountResponse{Count: n})
}

// List handles GET /api/v1/blogs
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogService.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, blogs)
}

// Find handles GET /api/v1/blogs/{blog_id}
func (h *BlogHandler) Find(w http.ResponseWriter, r *http.Request) {
	blog, err := h.blogService.Find(r.Context(), chi.URLParam(r, "blog_id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if blog == nil {
		respondError(w, apperrors.ErrBlogNotFound)
		return
	}

	respondJSON(w, http.StatusOK, blog)
}

// Create handles POST /api/v1/blogs
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req services.CreateBlogInput
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}

	blog, err := h.blogService.Create(ctx, middleware.GetUser(ctx), req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, blog)
}

// Edit handles PUT /api/v1/blogs/{blog_id}
func (h *BlogHandler) Edit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	blogID := chi.URLParam(r, "blog_id")

	var req services.EditBlogInput
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}

	blog, err := h.blogService.Edit(ctx, middleware.GetUser(ctx), blogID, req)
	if err != nil {
		respondError(w, err)
		return
	}
	if blog == nil {
		respondError(w, apperrors.ErrBlogNotFound)
		return
	}

	respondJSON(w, http.StatusOK, blog)
}

// Delete handles DELETE /api/v1/blogs/{blog_id}
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	blog, err := h.blogService.Delete(ctx, middleware.GetUser(ctx), chi.URLParam(r, "blog_id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if blog == nil {
		respondError(w, apperrors.ErrBlogNotFound)
		return
	}

	respondJSON(w, http.StatusOK, blog)
}
