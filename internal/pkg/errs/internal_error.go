package errs

import (
	"errors"
	"fmt"
)

// ErrInternal is the sentinel error for failures that have no more
// specific classification, such as a store that refused a command
// after losing its durability guarantee.
var ErrInternal = errors.New("internal failure")

// InternalError indicates an unexpected failure inside a component.
type InternalError struct {
	Message string
	Cause   error
}

// NewInternalError creates an InternalError without an underlying cause.
func NewInternalError(message string) *InternalError {
	return &InternalError{Message: message}
}

// NewInternalErrorWithCause creates an InternalError wrapping an underlying cause.
func NewInternalErrorWithCause(message string, cause error) *InternalError {
	return &InternalError{Message: message, Cause: cause}
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrInternal, e.Message, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrInternal, e.Message))
}

func (e *InternalError) Unwrap() error {
	return ErrInternal
}
