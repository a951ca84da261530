package order

import "ordering/internal/core/domain/model/kernel"

// Event type discriminators, used by the durable log to tag payloads.
const (
	EventTypeOrderCreated      = "OrderCreated"
	EventTypeOrderStateChanged = "OrderStateChanged"
	EventTypeOrderClosed       = "OrderClosed"
)

// Event is the closed set of domain events describing everything that can
// happen to an order. Events are immutable facts: once appended to the log
// they are never changed or removed, and the projection is always a pure
// fold over them in log order.
type Event interface {
	// EventType returns the discriminator stored alongside the payload
	// in the durable log.
	EventType() string

	// AggregateID returns the id of the order the event belongs to.
	AggregateID() kernel.UUID

	isDomainEvent()
}

// OrderCreated records the birth of an order with its immutable item list.
type OrderCreated struct {
	ID    kernel.UUID
	Items map[string]int
}

func (e OrderCreated) EventType() string        { return EventTypeOrderCreated }
func (e OrderCreated) AggregateID() kernel.UUID { return e.ID }
func (OrderCreated) isDomainEvent()             {}

// OrderStateChanged records an accepted explicit state change.
type OrderStateChanged struct {
	ID       kernel.UUID
	NewState State
}

func (e OrderStateChanged) EventType() string        { return EventTypeOrderStateChanged }
func (e OrderStateChanged) AggregateID() kernel.UUID { return e.ID }
func (OrderStateChanged) isDomainEvent()             {}

// OrderClosed records the terminal transition to CLOSED together with the
// fulfillment outcome.
type OrderClosed struct {
	ID     kernel.UUID
	Result FulfillmentResult
}

func (e OrderClosed) EventType() string        { return EventTypeOrderClosed }
func (e OrderClosed) AggregateID() kernel.UUID { return e.ID }
func (OrderClosed) isDomainEvent()             {}
