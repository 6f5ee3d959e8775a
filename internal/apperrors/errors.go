package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller lacks the role required for the action.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates that no valid caller identity was supplied.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInvalidTransition indicates a state machine violation.
var ErrInvalidTransition = errors.New("invalid state transition")

// ErrInsufficientStock indicates a reservation would exceed available quantity.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrInventoryInvariant indicates a release or commit larger than the held reservation.
// It always signals a programming error and is never clamped.
var ErrInventoryInvariant = errors.New("inventory invariant violated")

// ErrPersistence indicates a store-level failure. Callers must assume nothing was written.
var ErrPersistence = errors.New("persistence failure")

// ErrNotification indicates a failed notification delivery. It is never surfaced as an operation failure.
var ErrNotification = errors.New("notification failure")

// AppError carries an HTTP-ish status code with a wrapped store error.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError wraps err as a persistence failure.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes both the persistence sentinel and the underlying cause to errors.Is/As.
func (e *AppError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrPersistence}
	}
	return []error{ErrPersistence, e.Err}
}
