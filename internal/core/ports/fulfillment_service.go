package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// FulfillmentService is the external collaborator that determines whether an
// order's goods can be delivered. For each accepted Fulfill request it
// eventually delivers exactly one outcome to the callback, at an unbounded
// later time, with no ordering guarantee across orders.
type FulfillmentService interface {
	// Fulfill hands an order over for fulfillment. The call only enqueues
	// the request; the outcome arrives asynchronously on the callback.
	Fulfill(ctx context.Context, orderID kernel.UUID, callback CloseCallback) error
}

// CloseCallback is the reply address a fulfillment outcome is delivered to.
// The coordinator implements it by enqueueing the outcome onto its own inbox.
type CloseCallback interface {
	// CloseOrder reports the fulfillment outcome for an order.
	CloseOrder(ctx context.Context, orderID kernel.UUID, result order.FulfillmentResult) error
}
