package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Builds the order aggregate and registers it with the order store, which
// appends the creation event before answering.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(store)
//	cmd, _ := NewCreateOrderCommand(kernel.NewUUID(), map[string]int{"TV": 1})
//
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	store ports.OrderStore
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(store ports.OrderStore) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		store: store,
	}
}

// Handle processes the order creation command.
// Returns the created order as the store recorded it.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.Items())
	if err != nil {
		return nil, err
	}

	return h.store.Create(ctx, newOrder)
}
