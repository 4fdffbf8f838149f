package apperrors

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
)

type Kind string

const (
	KindValidation     Kind = "VALIDATION"
	KindConflict       Kind = "CONFLICT"
	KindAuthentication Kind = "AUTHENTICATION"
	KindAuthorization  Kind = "AUTHORIZATION"
	KindNotFound       Kind = "NOT_FOUND"
)

// DomainError is an error a client is allowed to see. Details echo the
// offending input and must never carry a password.
type DomainError interface {
	error
	Code() string
	Kind() Kind
	HTTPStatus() int
	Message() string
	Details() map[string]any
	Unwrap() error
	WithCause(cause error) DomainError
	WithDetails(details map[string]any) DomainError
}

type domainError struct {
	code    string
	kind    Kind
	status  int
	message string
	details map[string]any
	cause   error
}

func (e *domainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *domainError) Code() string {
	return e.code
}

func (e *domainError) Kind() Kind {
	return e.kind
}

func (e *domainError) HTTPStatus() int {
	return e.status
}

func (e *domainError) Message() string {
	return e.message
}

func (e *domainError) Details() map[string]any {
	return e.details
}

func (e *domainError) Unwrap() error {
	return e.cause
}

// Is matches on code so sentinels still match after WithCause/WithDetails.
func (e *domainError) Is(target error) bool {
	t, ok := target.(*domainError)
	return ok && t.code == e.code
}

func (e *domainError) WithCause(cause error) DomainError {
	c := *e
	c.cause = cause
	return &c
}

func (e *domainError) WithDetails(details map[string]any) DomainError {
	c := *e
	c.details = maps.Clone(details)
	return &c
}

func New(code string, kind Kind, status int, message string) DomainError {
	return &domainError{
		code:    code,
		kind:    kind,
		status:  status,
		message: message,
	}
}

func As(err error) (DomainError, bool) {
	var de DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// KindOf returns the kind of err, or "" for errors outside the domain.
func KindOf(err error) Kind {
	if de, ok := As(err); ok {
		return de.Kind()
	}
	return ""
}

// InvalidArgs wraps echoed input under the key clients already read.
func InvalidArgs(args map[string]any) map[string]any {
	return map[string]any{"invalidArgs": args}
}

var (
	ErrValidation = New(
		"VALIDATION_FAILED",
		KindValidation,
		http.StatusBadRequest,
		"validation failed",
	)

	ErrPasswordMismatch = New(
		"PASSWORD_MISMATCH",
		KindValidation,
		http.StatusBadRequest,
		"Password does not match",
	)

	ErrInvalidID = New(
		"INVALID_ID",
		KindValidation,
		http.StatusBadRequest,
		"invalid id format",
	)

	ErrInvalidJSON = New(
		"INVALID_JSON",
		KindValidation,
		http.StatusBadRequest,
		"invalid request body",
	)

	// ErrOperationFailed hides store faults from clients.
	ErrOperationFailed = New(
		"OPERATION_FAILED",
		KindValidation,
		http.StatusBadRequest,
		"Something went wrong",
	)

	ErrDuplicateUser = New(
		"DUPLICATE_USER",
		KindConflict,
		http.StatusConflict,
		"Username and Email must be unique",
	)

	ErrNotAuthenticated = New(
		"NOT_AUTHENTICATED",
		KindAuthentication,
		http.StatusUnauthorized,
		"not authenticated",
	)

	ErrInvalidToken = New(
		"INVALID_TOKEN",
		KindAuthentication,
		http.StatusUnauthorized,
		"invalid token",
	)

	ErrInvalidCredentials = New(
		"INVALID_CREDENTIALS",
		KindAuthentication,
		http.StatusUnauthorized,
		"wrong credentials",
	)

	ErrForbidden = New(
		"FORBIDDEN",
		KindAuthorization,
		http.StatusForbidden,
		"Something went wrong. Can not delete blog.",
	)

	ErrBlogNotFound = New(
		"BLOG_NOT_FOUND",
		KindNotFound,
		http.StatusNotFound,
		"blog not found",
	)

	ErrUploadsDisabled = New(
		"UPLOADS_DISABLED",
		KindNotFound,
		http.StatusNotFound,
		"image uploads are not configured",
	)
)
