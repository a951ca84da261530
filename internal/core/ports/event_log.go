package ports

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// EventLog is the opaque ordered append-only log backing the order store.
// Events are never mutated or removed; Load returns them in exactly the
// order they were appended, which is what makes replay deterministic.
//
// An Append error is fatal to the consistency guarantee of the store using
// the log: the store must stop accepting commands and be restarted so it can
// replay from a log that is known-good again.
type EventLog interface {
	// Append durably stores one event at the tail of the log.
	// It must not return until the event is persisted.
	Append(ctx context.Context, evt order.Event) error

	// Load returns every event in the log in append order.
	// Used once at store start to rebuild the projection.
	Load(ctx context.Context) ([]order.Event, error)
}
