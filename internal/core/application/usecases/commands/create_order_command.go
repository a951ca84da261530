package commands

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired      = errors.New("at least one item is required")
	ErrItemNameIsRequired    = errors.New("item name must not be blank")
	ErrItemQuantityIsInvalid = errors.New("item quantity must be greater than 0")
)

// CreateOrderCommand represents a request to register a new order with its
// item lines. The item map is keyed by item name with positive quantities.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, map[string]int{"TV": 1})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(store)
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	items   map[string]int

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates that the order ID is valid and every item line has a non-blank
// name and a positive quantity. Returns an error if any validation fails.
func NewCreateOrderCommand(orderID kernel.UUID, items map[string]int) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Items returns a copy of the ordered item lines.
func (c CreateOrderCommand) Items() map[string]int {
	items := make(map[string]int, len(c.items))
	for name, quantity := range c.items {
		items[name] = quantity
	}
	return items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setItems(items map[string]int) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	copied := make(map[string]int, len(items))
	for name, quantity := range items {
		if strings.TrimSpace(name) == "" {
			return ErrItemNameIsRequired
		}
		if quantity <= 0 {
			return ErrItemQuantityIsInvalid
		}
		copied[name] = quantity
	}

	c.items = copied
	return nil
}
