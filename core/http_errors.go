package core

import (
	"errors"
	"net/http"
)

// APIError is a request-facing failure with an HTTP status, a stable key for
// clients and a human-readable detail.
type APIError struct {
	Status int    // HTTP status code
	Key    string // Stable error key (e.g., "not_found", "permission_denied")
	Detail string // Message shown to the client
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Key
}

// Is matches another APIError with the same status and key, so errors.Is
// works against the sentinels below regardless of detail.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Status == e.Status && t.Key == e.Key
}

// WithDetail returns a copy of e carrying detail. An empty detail keeps the default.
func (e *APIError) WithDetail(detail string) *APIError {
	c := *e
	if detail != "" {
		c.Detail = detail
	}
	return &c
}

var (
	ErrBadRequest           = &APIError{Status: http.StatusBadRequest, Key: "bad_request", Detail: "Malformed request."}
	ErrNotAuthenticated     = &APIError{Status: http.StatusUnauthorized, Key: "not_authenticated", Detail: "Authentication credentials were not provided."}
	ErrPermissionDenied     = &APIError{Status: http.StatusForbidden, Key: "permission_denied", Detail: "You do not have permission to perform this action."}
	ErrNotFound             = &APIError{Status: http.StatusNotFound, Key: "not_found", Detail: "Not found."}
	ErrMethodNotAllowed     = &APIError{Status: http.StatusMethodNotAllowed, Key: "method_not_allowed", Detail: "Method not allowed."}
	ErrUnsupportedMediaType = &APIError{Status: http.StatusUnsupportedMediaType, Key: "unsupported_media_type", Detail: "Unsupported media type in request."}
	ErrInternal             = &APIError{Status: http.StatusInternalServerError, Key: "internal_error", Detail: "A server error occurred."}
)

// NewAPIError creates a custom API error.
//
// Example:
//
//	err := core.NewAPIError(http.StatusConflict, "duplicate_slug", "Slug is already taken.")
func NewAPIError(status int, key, detail string) *APIError {
	return &APIError{Status: status, Key: key, Detail: detail}
}

func BadRequest(detail string) *APIError       { return ErrBadRequest.WithDetail(detail) }
func NotFound(detail string) *APIError         { return ErrNotFound.WithDetail(detail) }
func PermissionDenied(detail string) *APIError { return ErrPermissionDenied.WithDetail(detail) }

// AsAPIError extracts an *APIError from err's chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
