// Package ask implements the request/response half of the message passing
// used between the application's actors. A caller builds a message around a
// fresh reply channel, sends it into the target's inbox, and waits for the
// reply under the caller's context deadline.
package ask

import "context"

// Do sends a message into inbox and waits for a single reply. The build
// function receives the reply channel to embed into the message. The reply
// channel is buffered, so the responder never blocks on delivery even when
// the caller has already given up.
//
// Inboxes are bounded; when the target's inbox is full the send itself
// blocks until there is room or the context expires. That, plus the
// deadline, is the only backpressure in the system.
//
// Returns the zero value of R and the context's error when ctx expires
// before the reply arrives.
func Do[M any, R any](ctx context.Context, inbox chan<- M, build func(reply chan<- R) M) (R, error) {
	reply := make(chan R, 1)
	msg := build(reply)

	select {
	case inbox <- msg:
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}

	select {
	case r := <-reply:
		return r, nil
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// Tell sends a message into inbox without waiting for any reply, honoring
// the context deadline on the send itself.
func Tell[M any](ctx context.Context, inbox chan<- M, msg M) error {
	select {
	case inbox <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
