// Package eventlog persists the order event stream in PostgreSQL.
// Events are stored append-only in a single table; the sequence column is
// assigned by the database and fixes the global replay order.
package eventlog

import (
	"encoding/json"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

// EventDTO represents one persisted domain event. Rows are only ever
// inserted; there are no updates or deletes.
type EventDTO struct {
	Seq     int64  `gorm:"primaryKey;autoIncrement"`
	Type    string `gorm:"type:varchar(64);not null"`
	Payload []byte `gorm:"type:jsonb;not null"`
}

// TableName specifies the database table name for persisted events.
func (EventDTO) TableName() string {
	return "order_events"
}

type orderCreatedPayload struct {
	OrderID string         `json:"orderId"`
	Items   map[string]int `json:"items"`
}

type orderStateChangedPayload struct {
	OrderID  string `json:"orderId"`
	NewState string `json:"newState"`
}

type orderClosedPayload struct {
	OrderID string `json:"orderId"`
	Result  string `json:"result"`
}

// fromDomain converts a domain event to its database representation.
func fromDomain(evt order.Event) (EventDTO, error) {
	var payload any

	switch e := evt.(type) {
	case order.OrderCreated:
		payload = orderCreatedPayload{OrderID: e.ID.String(), Items: e.Items}
	case order.OrderStateChanged:
		payload = orderStateChangedPayload{OrderID: e.ID.String(), NewState: e.NewState.String()}
	case order.OrderClosed:
		payload = orderClosedPayload{OrderID: e.ID.String(), Result: e.Result.String()}
	default:
		return EventDTO{}, errs.NewValueIsInvalidError("event")
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return EventDTO{}, errs.NewValueIsInvalidErrorWithCause("event", err)
	}

	return EventDTO{Type: evt.EventType(), Payload: raw}, nil
}

// toDomain converts a database row back into a domain event.
func toDomain(dto EventDTO) (order.Event, error) {
	switch dto.Type {
	case order.EventTypeOrderCreated:
		var payload orderCreatedPayload
		if err := json.Unmarshal(dto.Payload, &payload); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("payload", err)
		}

		id, err := kernel.UUIDFromString(payload.OrderID)
		if err != nil {
			return nil, err
		}
		return order.OrderCreated{ID: id, Items: payload.Items}, nil

	case order.EventTypeOrderStateChanged:
		var payload orderStateChangedPayload
		if err := json.Unmarshal(dto.Payload, &payload); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("payload", err)
		}

		id, err := kernel.UUIDFromString(payload.OrderID)
		if err != nil {
			return nil, err
		}
		newState, err := order.ParseState(payload.NewState)
		if err != nil {
			return nil, err
		}
		return order.OrderStateChanged{ID: id, NewState: newState}, nil

	case order.EventTypeOrderClosed:
		var payload orderClosedPayload
		if err := json.Unmarshal(dto.Payload, &payload); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("payload", err)
		}

		id, err := kernel.UUIDFromString(payload.OrderID)
		if err != nil {
			return nil, err
		}
		result, err := order.ParseFulfillmentResult(payload.Result)
		if err != nil {
			return nil, err
		}
		return order.OrderClosed{ID: id, Result: result}, nil

	default:
		return nil, errs.NewValueIsInvalidError("eventType")
	}
}
