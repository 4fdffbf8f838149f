package handlers

import (
	"net/http"

	"blog-backend/internal/apperrors"
	"blog-backend/internal/middleware"
	"blog-backend/internal/services"
)

// ImageHandler hands out presigned upload URLs for blog images
type ImageHandler struct {
	imageService *services.ImageService
}

// NewImageHandler creates a new image handler. imageService is nil when
// object storage is not configured.
func NewImageHandler(imageService *services.ImageService) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
	}
}

// Upload handles POST /api/v1/images/upload
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.imageService == nil {
		respondError(w, apperrors.ErrUploadsDisabled)
		return
	}

	ctx := r.Context()

	var req services.UploadRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}

	response, err := h.imageService.PresignUpload(ctx, middleware.GetUser(ctx), req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, response)
}
