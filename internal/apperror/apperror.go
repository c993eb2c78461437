// Package apperror defines the error taxonomy shared by the service and
// handler layers. Services return AppError values wrapping one of the
// sentinel kinds below; handlers map kinds to HTTP status codes with
// errors.Is so the service layer never sees HTTP.
package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated means no current user could be resolved.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidArgument means the caller supplied invalid input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound means a referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means the write collides with an existing record.
	ErrConflict = errors.New("conflict")

	// ErrUnavailable means the storage layer failed; the whole operation
	// aborts with no partial result.
	ErrUnavailable = errors.New("storage unavailable")
)

// AppError carries a sentinel kind plus a human-readable message.
type AppError struct {
	Err     error  // one of the sentinel kinds above
	Message string // human-readable description
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Unauthenticated returns an AppError for a missing current user.
func Unauthenticated() *AppError {
	return &AppError{Err: ErrUnauthenticated, Message: "authentication required"}
}

// InvalidArgument returns an AppError for bad caller input.
func InvalidArgument(message string) *AppError {
	return &AppError{Err: ErrInvalidArgument, Message: message}
}

// NotFound returns an AppError for a missing record.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

// Conflict returns an AppError for a conflicting write.
func Conflict(message string) *AppError {
	return &AppError{Err: ErrConflict, Message: message}
}

// Unavailable wraps a storage failure. The underlying error stays in the
// chain for logging but is never exposed to clients.
func Unavailable(op string, err error) *AppError {
	return &AppError{
		Err:     fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err),
		Message: "storage unavailable",
	}
}
