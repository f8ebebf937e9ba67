// Package apperror defines the error kinds the API reports to clients.
// Services return *AppError for every outcome the client should see; anything
// else reaching the HTTP layer is treated as an internal failure.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the category of an application error.
type Kind int

const (
	// Internal is an unexpected store or external-service failure.
	Internal Kind = iota
	// Validation is malformed input: email shape, missing fields, short passwords.
	Validation
	// BadRequest is a request that cannot be served as asked (self-follow, bad ids, bad credentials).
	BadRequest
	// Conflict is a uniqueness violation on username or email.
	Conflict
	// Unauthorized is a missing, invalid or expired session token.
	Unauthorized
	// Forbidden is an action on a resource the caller does not own.
	Forbidden
	// NotFound is a referenced user or post that does not exist.
	NotFound
)

// AppError carries a client-facing message and an optional underlying cause.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the kind to an HTTP status. Conflicts are reported as 400
// because the web client treats every signup rejection the same way.
func (e *AppError) StatusCode() int {
	switch e.Kind {
	case Validation, BadRequest, Conflict:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func NewValidation(message string) *AppError {
	return New(Validation, message, nil)
}

func NewBadRequest(message string) *AppError {
	return New(BadRequest, message, nil)
}

func NewConflict(message string) *AppError {
	return New(Conflict, message, nil)
}

func NewUnauthorized(message string, err error) *AppError {
	return New(Unauthorized, message, err)
}

func NewForbidden(message string) *AppError {
	return New(Forbidden, message, nil)
}

func NewNotFound(message string) *AppError {
	return New(NotFound, message, nil)
}

func NewInternal(message string, err error) *AppError {
	return New(Internal, message, err)
}

// As returns the *AppError in err's chain, if any.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err carries an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}
