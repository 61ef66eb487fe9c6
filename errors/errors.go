// Package errors provides unified error handling for the upload relay.
// It implements structured error types with error codes and HTTP status
// mapping so every failure is converted to exactly one JSON response at
// the request boundary.
package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// HTTPStatus is the HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// --- Common Error Constructors ---

// NoToken creates a new AppError for a request without a usable bearer token.
func NoToken() *AppError {
	return &AppError{
		Code: ErrCodeNoToken, Message: "No authentication token provided.",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// InvalidToken creates a new AppError for a token that failed verification.
// The reason is a short description only; verification internals stay out
// of the response.
func InvalidToken(reason string) *AppError {
	e := &AppError{
		Code: ErrCodeInvalidToken, Message: "Invalid authentication token.",
		HTTPStatus: http.StatusUnauthorized,
	}
	if reason != "" {
		e = e.WithDetail("reason", reason)
	}
	return e
}

// OwnershipMismatch creates a new AppError for a declared owner id that does
// not match the verified identity.
func OwnershipMismatch() *AppError {
	return &AppError{
		Code: ErrCodeOwnershipMismatch, Message: "Declared user id does not match the authenticated user.",
		HTTPStatus: http.StatusForbidden,
	}
}

// MissingFile creates a new AppError for a multipart body without a file part.
func MissingFile() *AppError {
	return &AppError{
		Code: ErrCodeMissingFile, Message: "No file provided.",
		HTTPStatus: http.StatusBadRequest,
	}
}

// InvalidInput creates a new AppError for a body that could not be parsed.
func InvalidInput(reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid request: %s", reason),
		HTTPStatus: http.StatusBadRequest,
	}
}

// MethodNotAllowed creates a new AppError for an unsupported HTTP method.
func MethodNotAllowed(method string) *AppError {
	return &AppError{
		Code: ErrCodeMethodNotAllowed, Message: "Method not allowed.",
		HTTPStatus: http.StatusMethodNotAllowed,
		Details:    map[string]any{"method": method},
	}
}

// RouteNotFound creates a new AppError for an unknown route.
func RouteNotFound(path string) *AppError {
	return &AppError{
		Code: ErrCodeNotFound, Message: "Not found.",
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"path": path},
	}
}

// UpstreamRejected creates a new AppError carrying the remote document API's
// own failure description.
func UpstreamRejected(description string) *AppError {
	if description == "" {
		description = "The document service rejected the upload."
	}
	return &AppError{
		Code: ErrCodeUpstreamRejected, Message: description,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// Internal creates a new AppError for an unexpected error. The cause's text
// is surfaced as a detail alongside the generic message.
func Internal(cause error) *AppError {
	e := &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
	if cause != nil {
		e = e.WithDetail("error", cause.Error())
	}
	return e
}
