package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// ChangeOrderStateCommandHandler handles externally requested state changes.
// It goes through the order workflow rather than the store so that a change
// to PAID also triggers the automatic fulfillment continuation.
type ChangeOrderStateCommandHandler struct {
	workflow ports.OrderWorkflow
}

// NewChangeOrderStateCommandHandler creates a handler for state change requests.
func NewChangeOrderStateCommandHandler(workflow ports.OrderWorkflow) ChangeOrderStateCommandHandler {
	return ChangeOrderStateCommandHandler{
		workflow: workflow,
	}
}

// Handle processes the state change command.
// Returns the order as it looked right after the requested transition; any
// follow-up the workflow performs on its own is not reflected in the reply.
func (h *ChangeOrderStateCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStateCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.workflow.RequestStateChange(ctx, cmd.OrderID(), cmd.Target())
}
