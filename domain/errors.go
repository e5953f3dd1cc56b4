package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeUnauthenticated ErrorCode = "UNAUTHENTICATED"
	ErrCodeForbidden       ErrorCode = "FORBIDDEN"
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeInvalid         ErrorCode = "INVALID"
	ErrCodeConflict        ErrorCode = "CONFLICT"
	ErrCodeInternal        ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Sentinel errors for the deterministic failure kinds of the task engine.
// Parameterized variants below wrap these so callers can match with errors.Is.
var (
	ErrUnauthenticated = NewError(ErrCodeUnauthenticated, "authentication required")
	ErrForbidden       = NewError(ErrCodeForbidden, "permission denied")

	ErrTaskNotFound    = NewError(ErrCodeNotFound, "task not found")
	ErrUserNotFound    = NewError(ErrCodeNotFound, "user not found")
	ErrSessionNotFound = NewError(ErrCodeNotFound, "session not found")

	ErrInvalidInput  = NewError(ErrCodeInvalid, "invalid input")
	ErrInvalidStatus = NewError(ErrCodeInvalid, "invalid task status")

	ErrSelfDependency         = NewError(ErrCodeInvalid, "a task cannot depend on itself")
	ErrDuplicateDependency    = NewError(ErrCodeConflict, "dependency already declared on this task")
	ErrDependenciesIncomplete = NewError(ErrCodeConflict, "one or more dependencies are not done")
	ErrAlreadyAssigned        = NewError(ErrCodeConflict, "user already assigned to this task")
	ErrEmailTaken             = NewError(ErrCodeConflict, "email already registered")
	ErrVersionConflict        = NewError(ErrCodeConflict, "task was modified concurrently")

	ErrNoTasksAssigned = NewError(ErrCodeNotFound, "no tasks assigned to the current user")
)

// ForbiddenAction reports a permission denial for a named action.
func ForbiddenAction(action string) error {
	return WrapError(ErrCodeForbidden, fmt.Sprintf("no permission for action %q", action), ErrForbidden)
}

// InvalidInput reports the first violated validation constraint.
func InvalidInput(reason string) error {
	return WrapError(ErrCodeInvalid, reason, ErrInvalidInput)
}

// AlreadyAssigned reports the offending user id of a rejected assignment batch.
func AlreadyAssigned(userID string) error {
	return WrapError(ErrCodeConflict, fmt.Sprintf("user %s already assigned to this task", userID), ErrAlreadyAssigned)
}

// Internal wraps an unexpected collaborator failure so it surfaces without crashing the process.
func Internal(err error) error {
	return WrapError(ErrCodeInternal, "internal error", err)
}

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
