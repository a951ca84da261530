// Package fulfillment implements the fulfillment collaborator: a black box
// that, for every order handed to it, eventually reports exactly one outcome
// (success or failure, chosen at random) to the callback it was given.
package fulfillment

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/ask"
)

// DefaultMailboxSize bounds the service inbox when no size is configured.
const DefaultMailboxSize = 256

// deliverTimeout bounds the delivery of an outcome into the callback's inbox.
const deliverTimeout = 5 * time.Second

// Service is the nondeterministic fulfillment outcome generator. Requests
// are drained by a single goroutine; each one produces exactly one outcome
// on the callback, after an optional configured delay.
type Service struct {
	inbox  chan request
	stop   chan struct{}
	delay  time.Duration
	logger *slog.Logger
}

var _ ports.FulfillmentService = (*Service)(nil)

type request struct {
	orderID  kernel.UUID
	callback ports.CloseCallback
}

// New creates the fulfillment service and starts its loop. delay is how long
// the service pretends to work on each order before reporting the outcome;
// zero means outcomes are reported immediately.
func New(delay time.Duration, mailboxSize int, logger *slog.Logger) *Service {
	if mailboxSize <= 0 {
		mailboxSize = DefaultMailboxSize
	}

	s := &Service{
		inbox:  make(chan request, mailboxSize),
		stop:   make(chan struct{}),
		delay:  delay,
		logger: logger.With("component", "fulfillment_service"),
	}

	go s.run()
	return s
}

// Stop terminates the loop. Requests still in the inbox are dropped.
func (s *Service) Stop() {
	close(s.stop)
}

// Fulfill enqueues an order for fulfillment. The outcome arrives later on
// the callback; this call only blocks while the inbox is full.
func (s *Service) Fulfill(ctx context.Context, orderID kernel.UUID, callback ports.CloseCallback) error {
	return ask.Tell(ctx, s.inbox, request{orderID: orderID, callback: callback})
}

func (s *Service) run() {
	for {
		select {
		case <-s.stop:
			return
		case req := <-s.inbox:
			s.fulfill(req)
		}
	}
}

func (s *Service) fulfill(req request) {
	if s.delay > 0 {
		select {
		case <-s.stop:
			return
		case <-time.After(s.delay):
		}
	}

	outcome := order.Success
	if rand.IntN(2) == 0 {
		outcome = order.Failure
	}

	ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
	defer cancel()

	if err := req.callback.CloseOrder(ctx, req.orderID, outcome); err != nil {
		s.logger.ErrorContext(ctx, "Delivering fulfillment outcome failed",
			"order_id", req.orderID.String(), "outcome", outcome.String(), "error", err)
		return
	}

	s.logger.InfoContext(ctx, "Fulfillment outcome delivered",
		"order_id", req.orderID.String(), "outcome", outcome.String())
}
