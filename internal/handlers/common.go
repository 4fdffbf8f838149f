package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"blog-backend/internal/apperrors"

	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1 << 20

// ErrorResponse represents an error response
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// respondError sends an error response. Errors outside the domain are
// logged and reported as a bare 500.
func respondError(w http.ResponseWriter, err error) {
	de, ok := apperrors.As(err)
	if !ok {
		log.Error().Err(err).Msg("Unhandled error")
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL",
			Message: "internal server error",
		})
		return
	}

	if errors.Is(de, apperrors.ErrOperationFailed) {
		log.Error().Err(de.Unwrap()).Msg("Store operation failed")
	}

	respondJSON(w, de.HTTPStatus(), ErrorResponse{
		Code:    de.Code(),
		Message: de.Message(),
		Details: de.Details(),
	})
}

// decodeJSON reads a bounded JSON body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.ErrInvalidJSON.WithCause(errors.New("empty body"))
		}
		return apperrors.ErrInvalidJSON.WithCause(err)
	}
	return nil
}
