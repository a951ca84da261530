// Package orderstore implements the event-sourced order aggregate as a
// single-writer actor: one goroutine owns the projection and the event log,
// and processes commands strictly one at a time from its inbox. That total
// ordering is what makes every update linearizable: all orders share this
// one writer and one log, a deliberate scalability ceiling kept for the
// sake of simple, strong consistency.
package orderstore

import (
	"context"
	"fmt"
	"log/slog"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/ask"
	"ordering/internal/pkg/errs"
)

// DefaultMailboxSize bounds the store inbox when no size is configured.
// Senders block (under their ask deadline) once the inbox is full; that is
// the only backpressure the design has.
const DefaultMailboxSize = 256

// Store is the event-sourced order store. Construct it with New, which
// replays the entire event log into the projection before the command loop
// starts; call Stop to terminate the loop.
//
// Durability contract: every successful command appends its event to the log
// before the caller sees a success reply. A failed append is fatal: the
// store halts and rejects all further commands until a restart replays a
// known-good log.
//
// Known limitation, preserved deliberately: commands carry no idempotency
// key. A caller that times out and retries the same logical operation may
// append a duplicate event and re-apply a logically redundant change.
type Store struct {
	inbox  chan message
	stop   chan struct{}
	log    ports.EventLog
	orders map[kernel.UUID]*order.Order
	halted bool
	logger *slog.Logger
}

var _ ports.OrderStore = (*Store)(nil)

type result struct {
	order *order.Order
	err   error
}

type statsResult struct {
	counts map[order.State]int
	err    error
}

// message is the closed set of commands the store loop understands.
type message interface {
	isMessage()
}

type createMsg struct {
	order *order.Order
	reply chan<- result
}

type getMsg struct {
	id    kernel.UUID
	reply chan<- result
}

type changeStateMsg struct {
	id     kernel.UUID
	target order.State
	reply  chan<- result
}

type closeMsg struct {
	id     kernel.UUID
	result order.FulfillmentResult
	reply  chan<- result
}

type statsMsg struct {
	reply chan<- statsResult
}

func (createMsg) isMessage()      {}
func (getMsg) isMessage()         {}
func (changeStateMsg) isMessage() {}
func (closeMsg) isMessage()       {}
func (statsMsg) isMessage()       {}

// New builds the projection by folding the full event log in append order,
// then starts the command loop. Rebuilding from the log is how the store
// recovers after a restart; folding the same log always yields the same
// projection.
func New(ctx context.Context, eventLog ports.EventLog, mailboxSize int, logger *slog.Logger) (*Store, error) {
	if mailboxSize <= 0 {
		mailboxSize = DefaultMailboxSize
	}

	s := &Store{
		inbox:  make(chan message, mailboxSize),
		stop:   make(chan struct{}),
		log:    eventLog,
		orders: make(map[kernel.UUID]*order.Order),
		logger: logger.With("component", "order_store"),
	}

	events, err := eventLog.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading event log: %w", err)
	}
	for _, evt := range events {
		if applyErr := s.applyEvent(evt); applyErr != nil {
			return nil, fmt.Errorf("replaying event log: %w", applyErr)
		}
	}

	s.logger.InfoContext(ctx, "Projection rebuilt from event log",
		"events", len(events), "orders", len(s.orders))

	go s.run()
	return s, nil
}

// Stop terminates the command loop. In-flight asks receive no reply and
// time out at their own deadlines.
func (s *Store) Stop() {
	close(s.stop)
}

// Create appends OrderCreated for the given order and returns the stored copy.
func (s *Store) Create(ctx context.Context, o *order.Order) (*order.Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return s.askOrder(ctx, "Create", func(reply chan<- result) message {
		return createMsg{order: o, reply: reply}
	})
}

// Get returns the order, or an ObjectNotFoundError if the id is unknown.
func (s *Store) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return s.askOrder(ctx, "Get", func(reply chan<- result) message {
		return getMsg{id: id, reply: reply}
	})
}

// ChangeState performs an explicit state change against the transition table.
func (s *Store) ChangeState(ctx context.Context, id kernel.UUID, target order.State) (*order.Order, error) {
	return s.askOrder(ctx, "ChangeState", func(reply chan<- result) message {
		return changeStateMsg{id: id, target: target, reply: reply}
	})
}

// Close moves an IN_FULFILLMENT order to CLOSED with the given result.
func (s *Store) Close(ctx context.Context, id kernel.UUID, fulfillmentResult order.FulfillmentResult) (*order.Order, error) {
	return s.askOrder(ctx, "Close", func(reply chan<- result) message {
		return closeMsg{id: id, result: fulfillmentResult, reply: reply}
	})
}

// Stats returns the number of orders per state, read through the same loop
// as the commands so it observes no intermediate states.
func (s *Store) Stats(ctx context.Context) (map[order.State]int, error) {
	res, err := ask.Do(ctx, s.inbox, func(reply chan<- statsResult) message {
		return statsMsg{reply: reply}
	})
	if err != nil {
		return nil, errs.NewTimeoutErrorWithCause("Stats", err)
	}
	return res.counts, res.err
}

func (s *Store) askOrder(ctx context.Context, operation string, build func(reply chan<- result) message) (*order.Order, error) {
	res, err := ask.Do(ctx, s.inbox, build)
	if err != nil {
		return nil, errs.NewTimeoutErrorWithCause(operation, err)
	}
	return res.order, res.err
}

// run is the single writer. Nothing outside this goroutine ever touches the
// projection or the log.
func (s *Store) run() {
	for {
		select {
		case <-s.stop:
			return
		case msg := <-s.inbox:
			s.handle(msg)
		}
	}
}

func (s *Store) handle(msg message) {
	if s.halted {
		s.reject(msg)
		return
	}

	switch m := msg.(type) {
	case createMsg:
		m.reply <- s.handleCreate(m)
	case getMsg:
		m.reply <- s.handleGet(m)
	case changeStateMsg:
		m.reply <- s.handleChangeState(m)
	case closeMsg:
		m.reply <- s.handleClose(m)
	case statsMsg:
		m.reply <- statsResult{counts: s.countByState()}
	}
}

func (s *Store) reject(msg message) {
	err := errs.NewInternalError("order store halted after a failed append; restart and replay required")
	switch m := msg.(type) {
	case createMsg:
		m.reply <- result{err: err}
	case getMsg:
		m.reply <- result{err: err}
	case changeStateMsg:
		m.reply <- result{err: err}
	case closeMsg:
		m.reply <- result{err: err}
	case statsMsg:
		m.reply <- statsResult{err: err}
	}
}

func (s *Store) handleCreate(m createMsg) result {
	evt := order.OrderCreated{ID: m.order.ID(), Items: m.order.Items()}
	if err := s.persist(evt); err != nil {
		return result{err: err}
	}
	return s.replyWithOrder(m.order.ID())
}

func (s *Store) handleGet(m getMsg) result {
	o, ok := s.orders[m.id]
	if !ok {
		return result{err: errs.NewObjectNotFoundError("orderId", m.id.String())}
	}
	return result{order: o.Clone()}
}

func (s *Store) handleChangeState(m changeStateMsg) result {
	o, ok := s.orders[m.id]
	if !ok {
		return result{err: errs.NewObjectNotFoundError("orderId", m.id.String())}
	}

	evt, err := o.ChangeState(m.target)
	if err != nil {
		return result{err: err}
	}
	if err = s.persist(evt); err != nil {
		return result{err: err}
	}
	return s.replyWithOrder(m.id)
}

func (s *Store) handleClose(m closeMsg) result {
	o, ok := s.orders[m.id]
	if !ok {
		return result{err: errs.NewObjectNotFoundError("orderId", m.id.String())}
	}

	evt, err := o.Close(m.result)
	if err != nil {
		return result{err: err}
	}
	if err = s.persist(evt); err != nil {
		return result{err: err}
	}
	return s.replyWithOrder(m.id)
}

// persist durably appends the event and then folds it into the projection.
// Append precedes the reply, so a caller never sees success for an event
// that is not on disk. An append failure halts the store.
func (s *Store) persist(evt order.Event) error {
	if err := s.log.Append(context.Background(), evt); err != nil {
		s.halted = true
		s.logger.Error("Event append failed, halting store",
			"event_type", evt.EventType(), "order_id", evt.AggregateID().String(), "error", err)
		return errs.NewInternalErrorWithCause("append failed", err)
	}
	return s.applyEvent(evt)
}

// applyEvent folds one event into the projection. It is the same pure fold
// for live commands and for replay at startup.
func (s *Store) applyEvent(evt order.Event) error {
	switch e := evt.(type) {
	case order.OrderCreated:
		o, err := order.NewOrder(e.ID, e.Items)
		if err != nil {
			return fmt.Errorf("applying %s for order %s: %w", e.EventType(), e.ID, err)
		}
		s.orders[e.ID] = o
	case order.OrderStateChanged, order.OrderClosed:
		o, ok := s.orders[evt.AggregateID()]
		if !ok {
			return fmt.Errorf("applying %s: order %s does not exist", evt.EventType(), evt.AggregateID())
		}
		o.Apply(evt)
	default:
		return fmt.Errorf("unknown event type %T", evt)
	}
	return nil
}

func (s *Store) replyWithOrder(id kernel.UUID) result {
	o, ok := s.orders[id]
	if !ok {
		return result{err: errs.NewObjectNotFoundError("orderId", id.String())}
	}
	return result{order: o.Clone()}
}

func (s *Store) countByState() map[order.State]int {
	counts := make(map[order.State]int)
	for _, o := range s.orders {
		counts[o.State()]++
	}
	return counts
}
