package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var (
	ErrCloseOrderCommandIsNotConstructed = errors.New(
		"CloseOrderCommand must be created via NewCloseOrderCommand constructor",
	)
	ErrFulfillmentResultIsInvalid = errors.New("fulfillment result must be SUCCESS or FAILURE")
)

// CloseOrderCommand represents a request to close an order with the outcome
// reported by fulfillment. Only terminal outcomes are accepted.
type CloseOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	result  order.FulfillmentResult

	guard guard.ConstructorGuard
}

// NewCloseOrderCommand creates a command to close an order with result.
// Validates that the order ID is valid and result is SUCCESS or FAILURE.
func NewCloseOrderCommand(orderID kernel.UUID, result order.FulfillmentResult) (CloseOrderCommand, error) {
	closeCommand := CloseOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		closeCommand.setOrderID(orderID),
		closeCommand.setResult(result),
	); err != nil {
		return CloseOrderCommand{}, err
	}

	return closeCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCloseOrderCommandIsNotConstructed if validation fails.
func (c CloseOrderCommand) Validate() error {
	return c.guard.Validate(ErrCloseOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CloseOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Result returns the fulfillment outcome to close the order with.
func (c CloseOrderCommand) Result() order.FulfillmentResult {
	return c.result
}

func (c *CloseOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CloseOrderCommand) setResult(result order.FulfillmentResult) error {
	if err := result.Validate(); err != nil || result == order.NoResult {
		return ErrFulfillmentResultIsInvalid
	}

	c.result = result
	return nil
}
