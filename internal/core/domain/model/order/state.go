package order

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// State represents the lifecycle state of an order.
// It implements a state machine with a strict transition table:
//
//	CREATED ──> PAID ──> IN_FULFILLMENT ──> CLOSED
//
// Only CREATED->PAID and PAID->IN_FULFILLMENT are accepted as explicit state
// changes; the move to CLOSED happens exclusively through closing the order
// with a fulfillment result. Every other pair, including a change to the
// current state, is rejected.
type State int

const (
	// StateUnknown represents an invalid or undefined state.
	// This value (0) helps catch uninitialized State values.
	StateUnknown State = iota

	// StateCreated is the initial state of a freshly created order.
	StateCreated

	// StatePaid indicates payment was received. Reaching this state triggers
	// the automatic advance into fulfillment.
	StatePaid

	// StateInFulfillment indicates the order was handed to the fulfillment
	// service and is awaiting its outcome.
	StateInFulfillment

	// StateClosed is the final state. The fulfillment result is only
	// meaningful once an order is closed.
	StateClosed
)

// validStateChanges is the transition table for explicit state changes.
// Closing is deliberately absent: CLOSED is reached only via Close.
var validStateChanges = map[State]State{
	StateCreated: StatePaid,
	StatePaid:    StateInFulfillment,
}

func getStateStrings() map[State]string {
	return map[State]string{
		StateUnknown:       "UNKNOWN",
		StateCreated:       "CREATED",
		StatePaid:          "PAID",
		StateInFulfillment: "IN_FULFILLMENT",
		StateClosed:        "CLOSED",
	}
}

func getValidStateStrings() map[State]string {
	//nolint:exhaustive // StateUnknown is intentionally excluded as it's invalid
	return map[State]string{
		StateCreated:       "CREATED",
		StatePaid:          "PAID",
		StateInFulfillment: "IN_FULFILLMENT",
		StateClosed:        "CLOSED",
	}
}

// ParseState converts the wire representation ("CREATED", "PAID",
// "IN_FULFILLMENT", "CLOSED") into a State. Used when decoding PATCH
// bodies and replaying persisted events.
func ParseState(s string) (State, error) {
	for state, str := range getValidStateStrings() {
		if str == s {
			return state, nil
		}
	}
	return StateUnknown, errs.NewValueIsInvalidErrorWithCause(
		"state",
		fmt.Errorf("%q is not a valid order state", s),
	)
}

// Validate checks that the State is one of the defined lifecycle states.
func (s State) Validate() error {
	if _, ok := getValidStateStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"state",
			fmt.Errorf("%d is not a valid order state", s),
		)
	}
	return nil
}

// String returns the wire representation of the state.
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// CanChangeTo reports whether the (s, target) pair is in the transition table.
func (s State) CanChangeTo(target State) bool {
	to, ok := validStateChanges[s]
	return ok && to == target
}

// CanClose reports whether an order in this state may be closed.
// Closing is only valid from IN_FULFILLMENT.
func (s State) CanClose() bool {
	return s == StateInFulfillment
}
