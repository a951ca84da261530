package order

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder constructor. This ensures all orders are properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is the aggregate root for the order lifecycle. Its identity and item
// list are fixed at creation; only the state and the fulfillment result evolve,
// and they evolve exclusively through applied domain events.
//
// Order follows these invariants:
//   - Must have a valid unique identifier
//   - Must have at least one item, every quantity positive
//   - State transitions follow the transition table in State
//   - The fulfillment result is only set when the order is closed
//   - Can only be created through the NewOrder constructor
type Order struct {
	// id is the unique identifier for the order, immutable after creation
	id kernel.UUID

	// items maps item names to positive quantities, immutable after creation
	items map[string]int

	// state is the current position in the order lifecycle
	state State

	// result is the fulfillment outcome, meaningful only once state is CLOSED
	result FulfillmentResult

	// isConstructed ensures the order was created via NewOrder
	isConstructed bool
}

// NewOrder creates an Order in the CREATED state with no fulfillment result.
// The items map is copied, so later mutation of the argument cannot reach
// the aggregate.
//
// Returns a validation error if the id is invalid, the item list is empty,
// an item name is blank, or a quantity is not positive.
func NewOrder(id kernel.UUID, items map[string]int) (*Order, error) {
	order := &Order{
		state:         StateCreated,
		result:        NoResult,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Items returns a copy of the order's item quantities.
// The aggregate's own map is never handed out.
func (o *Order) Items() map[string]int {
	items := make(map[string]int, len(o.items))
	for name, qty := range o.items {
		items[name] = qty
	}
	return items
}

// State returns the current lifecycle state.
func (o *Order) State() State {
	return o.state
}

// FulfillmentResult returns the recorded fulfillment outcome.
// It is NoResult for any order that has not been closed.
func (o *Order) FulfillmentResult() FulfillmentResult {
	return o.result
}

// Clone returns an independent copy of the order. The store hands clones to
// callers so nothing outside the single-writer loop can touch the projection.
func (o *Order) Clone() *Order {
	clone := *o
	clone.items = o.Items()
	return &clone
}

// ChangeState validates an explicit state change against the transition
// table and, when accepted, returns the OrderStateChanged event describing
// it. The aggregate itself is not mutated; the caller appends the event to
// the log and then applies it.
//
// Returns an InvalidTransitionError for any pair outside the table,
// including a change to the current state.
func (o *Order) ChangeState(target State) (Event, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if !o.state.CanChangeTo(target) {
		return nil, errs.NewInvalidTransitionError(o.id.String(), o.state.String(), target.String())
	}
	return OrderStateChanged{ID: o.id, NewState: target}, nil
}

// Close validates closing the order with the given fulfillment result and,
// when accepted, returns the OrderClosed event. Closing is only valid while
// the order is IN_FULFILLMENT. Like ChangeState, it does not mutate.
func (o *Order) Close(result FulfillmentResult) (Event, error) {
	if err := result.Validate(); err != nil {
		return nil, err
	}
	if !o.state.CanClose() {
		return nil, errs.NewInvalidTransitionError(o.id.String(), o.state.String(), StateClosed.String())
	}
	return OrderClosed{ID: o.id, Result: result}, nil
}

// Apply mutates the order according to an already-accepted event, without
// re-validating it. Events in the log are established facts; replay must
// reproduce the projection exactly, so Apply never rejects anything.
// OrderCreated is handled by the projection itself (it brings the order into
// existence) and is ignored here.
func (o *Order) Apply(evt Event) {
	switch e := evt.(type) {
	case OrderStateChanged:
		o.state = e.NewState
	case OrderClosed:
		o.state = StateClosed
		o.result = e.Result
	case OrderCreated:
		// creation is applied by the projection, not the aggregate
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setItems(items map[string]int) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	copied := make(map[string]int, len(items))
	for name, qty := range items {
		if name == "" {
			return errs.NewValueIsRequiredError("item name")
		}
		if qty <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				"items",
				fmt.Errorf("quantity %d for item %q is not greater than 0", qty, name),
			)
		}
		copied[name] = qty
	}

	o.items = copied
	return nil
}
