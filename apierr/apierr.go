// Package apierr defines the typed error carried from the service layer to
// the HTTP layer. Every business-rule failure is an *Error with an
// HTTP-status-like code and a human-readable message; controllers translate
// it into a response without rewording it.
package apierr

import "net/http"

// Error is a failure with an HTTP status code attached.
type Error struct {
	StatusCode int    `json:"code"`
	Message    string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// New returns an Error with an arbitrary status code.
func New(statusCode int, message string) *Error {
	return &Error{StatusCode: statusCode, Message: message}
}

// BadRequest returns a 400 error.
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// NotFound returns a 404 error.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// Unauthorized returns a 401 error.
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// Forbidden returns a 403 error.
func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

// Internal returns a 500 error.
func Internal(message string) *Error {
	return New(http.StatusInternalServerError, message)
}
