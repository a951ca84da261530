package errs

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is the sentinel error for order state changes
// that are not listed in the transition table.
var ErrInvalidTransition = errors.New("invalid transition")

// InvalidTransitionError indicates that an order cannot move from its
// current state to the requested one. From and To carry the string form
// of the states involved.
type InvalidTransitionError struct {
	OrderID string
	From    string
	To      string
	Cause   error
}

// NewInvalidTransitionError creates an InvalidTransitionError without an underlying cause.
func NewInvalidTransitionError(orderID, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{
		OrderID: orderID,
		From:    from,
		To:      to,
	}
}

// NewInvalidTransitionErrorWithCause creates an InvalidTransitionError wrapping an underlying cause.
func NewInvalidTransitionErrorWithCause(orderID, from, to string, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{
		OrderID: orderID,
		From:    from,
		To:      to,
		Cause:   cause,
	}
}

func (e *InvalidTransitionError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: order %s cannot move from %s to %s (cause: %s)",
			ErrInvalidTransition, e.OrderID, e.From, e.To, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: order %s cannot move from %s to %s",
		ErrInvalidTransition, e.OrderID, e.From, e.To))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
