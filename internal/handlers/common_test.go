package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blog-backend/internal/apperrors"
)

func TestRespondError(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", apperrors.ErrValidation, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"conflict", apperrors.ErrDuplicateUser, http.StatusConflict, "DUPLICATE_USER"},
		{"authentication", apperrors.ErrNotAuthenticated, http.StatusUnauthorized, "NOT_AUTHENTICATED"},
		{"authorization", apperrors.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"store fault", apperrors.ErrOperationFailed.WithCause(errors.New("dial tcp")), http.StatusBadRequest, "OPERATION_FAILED"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondError(rec, tc.err)

			if rec.Code != tc.wantStatus {
				t.Errorf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}

			var body ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != tc.wantCode {
				t.Errorf("expected code %s, got %s", tc.wantCode, body.Code)
			}
			if strings.Contains(body.Message, "dial tcp") || strings.Contains(body.Message, "boom") {
				t.Errorf("internal cause leaked: %q", body.Message)
			}
		})
	}
}

func TestRespondErrorDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, apperrors.ErrDuplicateUser.WithDetails(apperrors.InvalidArgs(map[string]any{"email": "u1@x.com"})))

	var body struct {
		Details struct {
			InvalidArgs map[string]any `json:"invalidArgs"`
		} `json:"details"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Details.InvalidArgs["email"] != "u1@x.com" {
		t.Errorf("expected echoed email, got %v", body.Details.InvalidArgs)
	}
}

func TestDecodeJSON(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"title":"x"}`, false},
		{"empty", ``, true},
		{"malformed", `{"title":`, true},
		{"too large", `{"title":"` + strings.Repeat("a", maxBodyBytes) + `"}`, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			var v struct {
				Title string `json:"title"`
			}
			err := decodeJSON(rec, req, &v)
			if tc.wantErr {
				if !errors.Is(err, apperrors.ErrInvalidJSON) {
					t.Errorf("expected invalid json, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if v.Title != "x" {
				t.Errorf("expected title x, got %q", v.Title)
			}
		})
	}
}

type mockPinger struct {
	err error
}

func (m mockPinger) Ping(ctx context.Context) error {
	return m.err
}

func TestHealth(t *testing.T) {
	testCases := []struct {
		name       string
		db         Pinger
		wantStatus int
	}{
		{"memory driver", nil, http.StatusOK},
		{"database up", mockPinger{}, http.StatusOK},
		{"database down", mockPinger{err: errors.New("connection refused")}, http.StatusServiceUnavailable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHealthHandler(tc.db).Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			if rec.Code != tc.wantStatus {
				t.Errorf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
		})
	}
}
