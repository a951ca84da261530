package errs

import (
	"errors"
	"fmt"
)

// ErrTimeout is the sentinel error for asks that exceeded their deadline.
var ErrTimeout = errors.New("operation timed out")

// TimeoutError indicates that a request against another component did not
// complete within its deadline. Operation names the request that timed out.
type TimeoutError struct {
	Operation string
	Cause     error
}

// NewTimeoutError creates a TimeoutError without an underlying cause.
func NewTimeoutError(operation string) *TimeoutError {
	return &TimeoutError{Operation: operation}
}

// NewTimeoutErrorWithCause creates a TimeoutError wrapping an underlying cause,
// typically the context error that fired.
func NewTimeoutErrorWithCause(operation string, cause error) *TimeoutError {
	return &TimeoutError{Operation: operation, Cause: cause}
}

func (e *TimeoutError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrTimeout, e.Operation, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrTimeout, e.Operation))
}

func (e *TimeoutError) Unwrap() error {
	return ErrTimeout
}
