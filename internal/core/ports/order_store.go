package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderStore is the event-sourced order aggregate. All commands are processed
// strictly one at a time against the current projection, so no two commands
// ever observe or produce overlapping intermediate states.
//
// Every method is an ask: the command is delivered to the store's inbox and
// the caller waits for the reply under the context deadline. On expiry the
// caller receives a TimeoutError; the command may still be processed later.
// Commands carry no idempotency key, so a caller that times out and retries
// the same logical operation can append a duplicate event, an accepted
// limitation of this design.
type OrderStore interface {
	// Create appends OrderCreated for a new order and returns the stored order.
	Create(ctx context.Context, o *order.Order) (*order.Order, error)

	// Get returns the order, or an ObjectNotFoundError if the id is unknown.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ChangeState validates the transition against the transition table,
	// appends OrderStateChanged, and returns the updated order. Fails with
	// ObjectNotFoundError or InvalidTransitionError; on failure the order
	// is left unchanged.
	ChangeState(ctx context.Context, id kernel.UUID, target order.State) (*order.Order, error)

	// Close moves an IN_FULFILLMENT order to CLOSED, recording the
	// fulfillment result. Fails with ObjectNotFoundError or
	// InvalidTransitionError in any other state.
	Close(ctx context.Context, id kernel.UUID, result order.FulfillmentResult) (*order.Order, error)

	// Stats returns the number of orders per state, read through the same
	// sequential loop as the commands.
	Stats(ctx context.Context) (map[order.State]int, error)
}
