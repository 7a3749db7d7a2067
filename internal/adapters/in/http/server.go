// Package http exposes the order lifecycle over HTTP with echo. Requests are
// validated against the embedded OpenAPI document before they reach a
// handler; every failure is rendered as an ErrorResponse.
package http

import (
	"context"
	"errors"
	"net/http"

	"ordersync/internal/core/application/usecases/commands"
	"ordersync/internal/core/application/usecases/queries"
	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/domain/model/reel"
	"ordersync/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	UpdateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error)
	}
	StartOrderHandler interface {
		Handle(ctx context.Context, cmd commands.StartOrderCommand) error
	}
	StopOrderHandler interface {
		Handle(ctx context.Context, cmd commands.StopOrderCommand) (commands.StopResult, error)
	}
	DeleteOrderHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error
	}
	CreateReelEventHandler interface {
		Handle(ctx context.Context, cmd commands.CreateReelEventCommand) (kernel.UUID, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}
	GetAllOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetAllOrdersQuery) ([]queries.OrderView, error)
	}
	ValidateOrderExistsHandler interface {
		Handle(ctx context.Context, query queries.ValidateOrderExistsQuery) (bool, error)
	}
	GetSlitterMachinesHandler interface {
		Handle(ctx context.Context, query queries.GetSlitterMachinesQuery) ([]queries.SlitterMachineView, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder         CreateOrderHandler
	UpdateOrder         UpdateOrderHandler
	StartOrder          StartOrderHandler
	StopOrder           StopOrderHandler
	DeleteOrder         DeleteOrderHandler
	CreateReelEvent     CreateReelEventHandler
	GetOrder            GetOrderHandler
	GetAllOrders        GetAllOrdersHandler
	ValidateOrderExists ValidateOrderExistsHandler
	GetSlitterMachines  GetSlitterMachinesHandler
}

// Server implements ServerInterface on top of the command and query handlers.
type Server struct {
	h Handlers
}

var _ ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}

// GetOrders handles GET /api/orders.
func (s *Server) GetOrders(ctx echo.Context) error {
	views, err := s.h.GetAllOrders.Handle(ctx.Request().Context(), queries.NewGetAllOrdersQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]Order, len(views))
	for i, v := range views {
		response[i] = orderFromView(v)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewCreateOrderCommand(body.UserID, body.Order)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, orderFromDomain(created))
}

// ValidateOrderExists handles GET /api/orders/valida/{productionOrder}.
func (s *Server) ValidateOrderExists(ctx echo.Context, productionOrder int) error {
	query := queries.NewValidateOrderExistsQuery(productionOrder)

	exists, err := s.h.ValidateOrderExists.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, Exists{Exists: exists})
}

// GetOrder handles GET /api/orders/{productionOrder}.
func (s *Server) GetOrder(ctx echo.Context, productionOrder int) error {
	query, err := queries.NewGetOrderQuery(productionOrder)
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderFromView(view))
}

// UpdateOrder handles PUT /api/orders/{productionOrder}. Status is not
// writable here: it only moves through the lifecycle operations.
func (s *Server) UpdateOrder(ctx echo.Context, productionOrder int) error {
	var body OrderUpdate
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewUpdateOrderCommand(productionOrder, body.Slitter, body.LastModificatorUser)
	if err != nil {
		return writeError(ctx, err)
	}

	if _, err = s.h.UpdateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeleteOrder handles DELETE /api/orders/{productionOrder}.
func (s *Server) DeleteOrder(ctx echo.Context, productionOrder int, params UserParams) error {
	cmd, err := commands.NewDeleteOrderCommand(productionOrder, params.user())
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.h.DeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// StartOrder handles POST /api/orders/{productionOrder}/start.
func (s *Server) StartOrder(ctx echo.Context, productionOrder int, params UserParams) error {
	cmd, err := commands.NewStartOrderCommand(productionOrder, params.user())
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.h.StartOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// StopOrder handles POST /api/orders/{productionOrder}/stop. A stop that
// passed the remote stage answers 200 even when the local stop failed; the
// body then carries localStopError and status 920.
func (s *Server) StopOrder(ctx echo.Context, productionOrder int, params UserParams) error {
	cmd, err := commands.NewStopOrderCommand(productionOrder, params.user())
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.h.StopOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, stopResultFrom(result))
}

// CreateReelEvent handles POST /api/reels/events.
func (s *Server) CreateReelEvent(ctx echo.Context) error {
	var body NewReelEvent
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := reelEventCommand(body)
	if err != nil {
		return writeError(ctx, err)
	}

	messageID, err := s.h.CreateReelEvent.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, ReelEventCreated{
		MessageID:       messageID.String(),
		ProductionOrder: body.ProductionOrder,
	})
}

func reelEventCommand(body NewReelEvent) (commands.CreateReelEventCommand, error) {
	details := make([]reel.Detail, 0, len(body.Reels))
	var checks []error
	for _, r := range body.Reels {
		detail, err := reel.NewDetail(r.Shaft, r.Position, r.ProductCode, r.ManualExit, r.EdgeTrim)
		if err != nil {
			checks = append(checks, err)
			continue
		}
		details = append(details, detail)
	}
	if err := errors.Join(checks...); err != nil {
		return commands.CreateReelEventCommand{}, err
	}

	return commands.NewCreateReelEventCommand(reel.Shape{
		ProductionOrder: body.ProductionOrder,
		UserID:          body.UserID,
		UpperShaftReels: body.UpperShaftReels,
		LowerShaftReels: body.LowerShaftReels,
		ReelLength:      body.ReelLength,
		EndOfLot:        body.EndOfLot,
	}, details)
}

// GetSlitterMachines handles GET /api/machines/slitters.
func (s *Server) GetSlitterMachines(ctx echo.Context) error {
	machines, err := s.h.GetSlitterMachines.Handle(ctx.Request().Context(), queries.NewGetSlitterMachinesQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]SlitterMachine, len(machines))
	for i, m := range machines {
		response[i] = SlitterMachine{ID: m.ID, Code: m.Code, Name: m.Name}
	}
	return ctx.JSON(http.StatusOK, response)
}
