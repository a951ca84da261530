package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var (
	ErrChangeOrderStateCommandIsNotConstructed = errors.New(
		"ChangeOrderStateCommand must be created via NewChangeOrderStateCommand constructor",
	)
	ErrTargetStateIsInvalid = errors.New("target state must be a valid order state")
)

// ChangeOrderStateCommand represents a request to move an order into a target
// state. Whether the transition is allowed is decided by the order aggregate;
// the command only guarantees the target is a known state.
type ChangeOrderStateCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.State

	guard guard.ConstructorGuard
}

// NewChangeOrderStateCommand creates a command to move an order into target.
// Validates that the order ID is valid and target is a known state.
func NewChangeOrderStateCommand(orderID kernel.UUID, target order.State) (ChangeOrderStateCommand, error) {
	stateCommand := ChangeOrderStateCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		stateCommand.setOrderID(orderID),
		stateCommand.setTarget(target),
	); err != nil {
		return ChangeOrderStateCommand{}, err
	}

	return stateCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrChangeOrderStateCommandIsNotConstructed if validation fails.
func (c ChangeOrderStateCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStateCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c ChangeOrderStateCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the state the order is asked to move into.
func (c ChangeOrderStateCommand) Target() order.State {
	return c.target
}

func (c *ChangeOrderStateCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStateCommand) setTarget(target order.State) error {
	if err := target.Validate(); err != nil {
		return ErrTargetStateIsInvalid
	}

	c.target = target
	return nil
}
