package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// CloseOrderCommandHandler records a fulfillment outcome against the store.
// Used by the workflow when an outcome arrives; orders cannot be closed from
// the outside.
type CloseOrderCommandHandler struct {
	store ports.OrderStore
}

// NewCloseOrderCommandHandler creates a handler for order close operations.
func NewCloseOrderCommandHandler(store ports.OrderStore) CloseOrderCommandHandler {
	return CloseOrderCommandHandler{
		store: store,
	}
}

// Handle processes the close command.
// Returns the closed order as the store recorded it.
func (h *CloseOrderCommandHandler) Handle(ctx context.Context, cmd CloseOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.store.Close(ctx, cmd.OrderID(), cmd.Result())
}
