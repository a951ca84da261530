// Package eventlog provides an in-memory append-only event log. It backs
// tests and DB-less local runs; the durable implementation lives in the
// postgres adapter.
package eventlog

import (
	"context"
	"sync"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// Log is a mutex-guarded in-memory append-only event log.
// Events are never mutated or removed once appended.
type Log struct {
	mu     sync.Mutex
	events []order.Event
}

var _ ports.EventLog = (*Log)(nil)

// NewLog creates an empty in-memory event log.
func NewLog() *Log {
	return &Log{}
}

// Append stores one event at the tail of the log.
func (l *Log) Append(_ context.Context, evt order.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, cloneEvent(evt))
	return nil
}

// Load returns every event in append order. The returned slice is a copy;
// the log's own backing array is never handed out.
func (l *Log) Load(_ context.Context) ([]order.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	events := make([]order.Event, len(l.events))
	copy(events, l.events)
	return events, nil
}

// Len returns the number of events appended so far.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

// cloneEvent detaches reference fields so a caller mutating its own maps
// after Append cannot reach into the log.
func cloneEvent(evt order.Event) order.Event {
	if created, ok := evt.(order.OrderCreated); ok {
		items := make(map[string]int, len(created.Items))
		for name, qty := range created.Items {
			items[name] = qty
		}
		return order.OrderCreated{ID: created.ID, Items: items}
	}
	return evt
}
