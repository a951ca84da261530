// Package coordinator implements the workflow actor that sequences the
// pay -> fulfill -> close choreography across the order store and the
// fulfillment service.
//
// The coordinator owns one inbox and processes it one message at a time.
// Each message is handled by launching the asks it needs in the background,
// so a slow store never wedges the loop: the original caller is answered as
// soon as its own ask completes, and the automatic continuation runs on
// nobody's clock but its own. Once triggered, the continuation has no
// cancellation path; it runs to completion or times out on its own.
package coordinator

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/ask"
	"ordering/internal/pkg/errs"
)

// DefaultMailboxSize bounds the coordinator inbox when no size is configured.
const DefaultMailboxSize = 256

// Coordinator drives the order workflow. It accepts external state-change
// requests, forwards the store's answer verbatim to the caller, and when an
// order reaches PAID it advances it into fulfillment on its own: a second
// state change to IN_FULFILLMENT followed by a Fulfill dispatch, with the
// coordinator itself as the outcome callback.
type Coordinator struct {
	inbox       chan message
	stop        chan struct{}
	store       ports.OrderStore
	closeOrders commands.CloseOrderCommandHandler
	fulfillment ports.FulfillmentService
	askTimeout  time.Duration
	logger      *slog.Logger
}

var (
	_ ports.OrderWorkflow = (*Coordinator)(nil)
	_ ports.CloseCallback = (*Coordinator)(nil)
)

type result struct {
	order *order.Order
	err   error
}

type message interface {
	isMessage()
}

type stateChangeMsg struct {
	orderID kernel.UUID
	target  order.State
	reply   chan<- result
}

type closeMsg struct {
	orderID kernel.UUID
	result  order.FulfillmentResult
}

func (stateChangeMsg) isMessage() {}
func (closeMsg) isMessage()       {}

// New creates the coordinator and starts its message loop. askTimeout bounds
// every individual ask the coordinator issues against the store and the
// fulfillment service.
func New(
	store ports.OrderStore,
	fulfillment ports.FulfillmentService,
	askTimeout time.Duration,
	mailboxSize int,
	logger *slog.Logger,
) *Coordinator {
	if mailboxSize <= 0 {
		mailboxSize = DefaultMailboxSize
	}

	c := &Coordinator{
		inbox:       make(chan message, mailboxSize),
		stop:        make(chan struct{}),
		store:       store,
		closeOrders: commands.NewCloseOrderCommandHandler(store),
		fulfillment: fulfillment,
		askTimeout:  askTimeout,
		logger:      logger.With("component", "order_coordinator"),
	}

	go c.run()
	return c
}

// Stop terminates the message loop. Continuations already launched keep
// running to their own deadlines.
func (c *Coordinator) Stop() {
	close(c.stop)
}

// RequestStateChange asks the store for the transition and returns its
// result verbatim. The PAID continuation, when triggered, is invisible to
// this caller: it is neither awaited nor reported.
func (c *Coordinator) RequestStateChange(ctx context.Context, orderID kernel.UUID, target order.State) (*order.Order, error) {
	res, err := ask.Do(ctx, c.inbox, func(reply chan<- result) message {
		return stateChangeMsg{orderID: orderID, target: target, reply: reply}
	})
	if err != nil {
		return nil, errs.NewTimeoutErrorWithCause("RequestStateChange", err)
	}
	return res.order, res.err
}

// CloseOrder is the fulfillment outcome callback. It only enqueues; the
// loop picks the outcome up and closes the order against the store.
func (c *Coordinator) CloseOrder(ctx context.Context, orderID kernel.UUID, fulfillmentResult order.FulfillmentResult) error {
	return ask.Tell(ctx, c.inbox, message(closeMsg{orderID: orderID, result: fulfillmentResult}))
}

func (c *Coordinator) run() {
	for {
		select {
		case <-c.stop:
			return
		case msg := <-c.inbox:
			switch m := msg.(type) {
			case stateChangeMsg:
				c.handleStateChange(m)
			case closeMsg:
				c.handleClose(m)
			}
		}
	}
}

// handleStateChange performs step 1 of the workflow: ask the store, forward
// the result to the caller, and, independently of that reply, trigger the
// automatic continuation when the order just became PAID.
func (c *Coordinator) handleStateChange(m stateChangeMsg) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.askTimeout)
		defer cancel()

		o, err := c.store.ChangeState(ctx, m.orderID, m.target)
		m.reply <- result{order: o, err: err}

		if err == nil && o.State() == order.StatePaid {
			c.startFulfillment(o.ID())
		}
	}()
}

// startFulfillment is step 2: advance the paid order into IN_FULFILLMENT and
// hand it to the fulfillment service with ourselves as the callback. Runs on
// its own deadlines; a timeout here is never visible to the original caller.
func (c *Coordinator) startFulfillment(orderID kernel.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), c.askTimeout)
	defer cancel()

	if _, err := c.store.ChangeState(ctx, orderID, order.StateInFulfillment); err != nil {
		c.logger.ErrorContext(ctx, "Advancing paid order into fulfillment failed",
			"order_id", orderID.String(), "error", err)
		return
	}

	dispatchCtx, dispatchCancel := context.WithTimeout(context.Background(), c.askTimeout)
	defer dispatchCancel()

	if err := c.fulfillment.Fulfill(dispatchCtx, orderID, c); err != nil {
		c.logger.ErrorContext(dispatchCtx, "Dispatching order to fulfillment failed",
			"order_id", orderID.String(), "error", err)
	}
}

// handleClose is step 3: close the order with the reported outcome. The
// result of this call is delivered to nobody; failures are logged and
// otherwise absorbed. There are no retries.
func (c *Coordinator) handleClose(m closeMsg) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.askTimeout)
		defer cancel()

		cmd, err := commands.NewCloseOrderCommand(m.orderID, m.result)
		if err == nil {
			_, err = c.closeOrders.Handle(ctx, cmd)
		}
		if err != nil {
			c.logger.WarnContext(ctx, "Closing order after fulfillment failed, result dropped",
				"order_id", m.orderID.String(), "result", m.result.String(), "error", err)
		}
	}()
}
