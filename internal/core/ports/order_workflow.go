package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderWorkflow accepts external state-change requests and drives the
// pay -> fulfill -> close choreography. Implemented by the coordinator.
type OrderWorkflow interface {
	// RequestStateChange asks the store to perform the transition and
	// returns the store's result verbatim. When the resulting order is
	// PAID, the workflow additionally advances it into fulfillment in the
	// background; that continuation is neither awaited by nor reported to
	// the caller.
	RequestStateChange(ctx context.Context, orderID kernel.UUID, target order.State) (*order.Order, error)
}
