// Package order provides domain entities and business logic for order
// lifecycle management. It implements the Order aggregate root, the state
// machine that governs its transitions, and the domain events that are the
// sole source of truth for its history.
//
// The package includes:
//   - Order: The aggregate root holding identity, items, state, and fulfillment result
//   - State: A state machine with a strict transition table
//   - FulfillmentResult: The outcome recorded when an order is closed
//   - Event: The closed set of domain events (OrderCreated, OrderStateChanged, OrderClosed)
//
// Key business rules:
//   - Orders must have a valid unique identifier and at least one item with a positive quantity
//   - Identity and items are immutable after creation
//   - State follows a defined workflow: CREATED -> PAID -> IN_FULFILLMENT -> CLOSED
//   - Only CREATED->PAID and PAID->IN_FULFILLMENT are valid explicit state changes
//   - Closing requires the IN_FULFILLMENT state and records the fulfillment result
//
// Command methods (ChangeState, Close) validate a requested change and return
// the event describing it without mutating the aggregate; Apply performs the
// unvalidated mutation for events that have already been accepted and logged.
// This split is what makes replaying the event log deterministic.
package order
