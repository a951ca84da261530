package queries

import (
	"context"

	"ordering/internal/core/ports"
)

// GetOrderQueryHandler serves order lookups from the store projection.
// The lookup is answered by the store's command loop, so it reflects every
// change acknowledged before it.
type GetOrderQueryHandler struct {
	store ports.OrderStore
}

// NewGetOrderQueryHandler creates a handler for order lookups.
func NewGetOrderQueryHandler(store ports.OrderStore) GetOrderQueryHandler {
	return GetOrderQueryHandler{store: store}
}

// Handle executes the lookup and maps the order into a response snapshot.
// Returns ObjectNotFoundError when no order with the requested ID exists.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	found, err := h.store.Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return GetOrderQueryResponse{
		ID:                found.ID(),
		Items:             found.Items(),
		State:             found.State(),
		FulfillmentResult: found.FulfillmentResult(),
	}, nil
}
