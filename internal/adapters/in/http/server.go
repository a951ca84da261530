// Package http is the inbound HTTP gateway for the order lifecycle.
// It binds requests, dispatches them to command and query handlers, and maps
// domain errors onto HTTP status codes.
package http

import (
	"errors"
	"net/http"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateOrderRequest is the POST /orders request body.
type CreateOrderRequest struct {
	Items map[string]int `json:"items"`
}

// ChangeOrderStateRequest is the PATCH /orders/:id request body.
type ChangeOrderStateRequest struct {
	State string `json:"state"`
}

// OrderResponse is the representation of an order returned by every endpoint.
type OrderResponse struct {
	ID                string         `json:"id"`
	Items             map[string]int `json:"items"`
	State             string         `json:"state"`
	FulfillmentResult string         `json:"fulfillmentResult"`
}

// ErrorResponse is the error body returned for every non-2xx answer.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler commands.CreateOrderCommandHandler
	changeStateHandler commands.ChangeOrderStateCommandHandler

	// Query handlers
	getOrderHandler queries.GetOrderQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeStateHandler commands.ChangeOrderStateCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
) *Server {
	return &Server{
		createOrderHandler: createOrderHandler,
		changeStateHandler: changeStateHandler,
		getOrderHandler:    getOrderHandler,
	}
}

// RegisterRoutes attaches the order endpoints to the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/orders", s.CreateOrder)
	e.GET("/orders/:id", s.GetOrder)
	e.PATCH("/orders/:id", s.ChangeOrderState)
}

// CreateOrder handles POST /orders - registers a new order.
// The order ID is generated here; clients never supply one.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), req.Items)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderResponseFromDomain(created))
}

// GetOrder handles GET /orders/:id - retrieves a single order.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		// A malformed ID can never name an existing order.
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	snapshot, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		ID:                snapshot.ID.String(),
		Items:             snapshot.Items,
		State:             snapshot.State.String(),
		FulfillmentResult: snapshot.FulfillmentResult.String(),
	})
}

// ChangeOrderState handles PATCH /orders/:id - requests a state transition.
func (s *Server) ChangeOrderState(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	}

	var req ChangeOrderStateRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := order.ParseState(req.State)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Unknown order state: " + req.State,
		})
	}

	cmd, err := commands.NewChangeOrderStateCommand(orderID, target)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid state change: " + err.Error(),
		})
	}

	changed, err := s.changeStateHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromDomain(changed))
}

// errorResponse maps domain errors onto HTTP status codes. Timeouts and
// internal failures both surface as 500, so after one of those a client
// cannot tell whether its command was applied.
func (s *Server) errorResponse(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	case errors.Is(err, errs.ErrInvalidTransition):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		})
	}
}

func orderResponseFromDomain(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:                o.ID().String(),
		Items:             o.Items(),
		State:             o.State().String(),
		FulfillmentResult: o.FulfillmentResult().String(),
	}
}
