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

// ErrConflict indicates that the operation conflicts with the current state of a resource.
var ErrConflict = errors.New("state conflict")

// ErrForbidden indicates that the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// Cash desk state conflicts. Each wraps ErrConflict so callers can match
// either the specific condition or the broad kind with errors.Is.
var (
	// ErrSessionAlreadyOpen is returned when a register already has an open session.
	ErrSessionAlreadyOpen = fmt.Errorf("%w: register already has an open session", ErrConflict)

	// ErrSessionNotOpen is returned when a movement names a session that is not
	// open, or that belongs to a different register.
	ErrSessionNotOpen = fmt.Errorf("%w: session is not open", ErrConflict)

	// ErrSessionClosed is returned when closing a session that was already closed.
	ErrSessionClosed = fmt.Errorf("%w: session is already closed", ErrConflict)

	// ErrRegisterInactive is returned when posting against a deactivated register.
	ErrRegisterInactive = fmt.Errorf("%w: register is inactive", ErrConflict)

	// ErrHasOpenSession is returned when deactivating a register with an open session.
	ErrHasOpenSession = fmt.Errorf("%w: register has an open session", ErrConflict)
)

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
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

// NewAppError creates an AppError wrapping an underlying cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
