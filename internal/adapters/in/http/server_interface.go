package http

import (
	"fmt"

	"ordersync/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface lists the operations of openapi.yaml.
type ServerInterface interface {
	// (GET /api/orders)
	GetOrders(ctx echo.Context) error
	// (POST /api/orders)
	CreateOrder(ctx echo.Context) error
	// (GET /api/orders/valida/{productionOrder})
	ValidateOrderExists(ctx echo.Context, productionOrder int) error
	// (GET /api/orders/{productionOrder})
	GetOrder(ctx echo.Context, productionOrder int) error
	// (PUT /api/orders/{productionOrder})
	UpdateOrder(ctx echo.Context, productionOrder int) error
	// (DELETE /api/orders/{productionOrder})
	DeleteOrder(ctx echo.Context, productionOrder int, params UserParams) error
	// (POST /api/orders/{productionOrder}/start)
	StartOrder(ctx echo.Context, productionOrder int, params UserParams) error
	// (POST /api/orders/{productionOrder}/stop)
	StopOrder(ctx echo.Context, productionOrder int, params UserParams) error
	// (POST /api/reels/events)
	CreateReelEvent(ctx echo.Context) error
	// (GET /api/machines/slitters)
	GetSlitterMachines(ctx echo.Context) error
}

// ServerInterfaceWrapper binds path and query parameters before calling
// the handler.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindProductionOrder(ctx echo.Context) (int, error) {
	var productionOrder int
	err := runtime.BindStyledParameterWithOptions(
		"simple", "productionOrder", ctx.Param("productionOrder"), &productionOrder,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true},
	)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("productionOrder", fmt.Errorf("invalid format: %w", err))
	}
	return productionOrder, nil
}

func bindUserParams(ctx echo.Context) (UserParams, error) {
	var params UserParams
	if err := runtime.BindQueryParameter("form", true, false, "userId", ctx.QueryParams(), &params.UserID); err != nil {
		return UserParams{}, errs.NewValueIsInvalidErrorWithCause("userId", fmt.Errorf("invalid format: %w", err))
	}
	return params, nil
}

func (w *ServerInterfaceWrapper) GetOrders(ctx echo.Context) error {
	return w.Handler.GetOrders(ctx)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) ValidateOrderExists(ctx echo.Context) error {
	productionOrder, err := bindProductionOrder(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	return w.Handler.ValidateOrderExists(ctx, productionOrder)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	productionOrder, err := bindProductionOrder(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	return w.Handler.GetOrder(ctx, productionOrder)
}

func (w *ServerInterfaceWrapper) UpdateOrder(ctx echo.Context) error {
	productionOrder, err := bindProductionOrder(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	return w.Handler.UpdateOrder(ctx, productionOrder)
}

func (w *ServerInterfaceWrapper) DeleteOrder(ctx echo.Context) error {
	productionOrder, err := bindProductionOrder(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	params, err := bindUserParams(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	return w.Handler.DeleteOrder(ctx, productionOrder, params)
}

func (w *ServerInterfaceWrapper) StartOrder(ctx echo.Context) error {
	productionOrder, err := bindProductionOrder(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	params, err := bindUserParams(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	return w.Handler.StartOrder(ctx, productionOrder, params)
}

func (w *ServerInterfaceWrapper) StopOrder(ctx echo.Context) error {
	productionOrder, err := bindProductionOrder(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	params, err := bindUserParams(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	return w.Handler.StopOrder(ctx, productionOrder, params)
}

func (w *ServerInterfaceWrapper) CreateReelEvent(ctx echo.Context) error {
	return w.Handler.CreateReelEvent(ctx)
}

func (w *ServerInterfaceWrapper) GetSlitterMachines(ctx echo.Context) error {
	return w.Handler.GetSlitterMachines(ctx)
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds every operation of si to router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.GET("/api/orders", wrapper.GetOrders)
	router.POST("/api/orders", wrapper.CreateOrder)
	router.GET("/api/orders/valida/:productionOrder", wrapper.ValidateOrderExists)
	router.GET("/api/orders/:productionOrder", wrapper.GetOrder)
	router.PUT("/api/orders/:productionOrder", wrapper.UpdateOrder)
	router.DELETE("/api/orders/:productionOrder", wrapper.DeleteOrder)
	router.POST("/api/orders/:productionOrder/start", wrapper.StartOrder)
	router.POST("/api/orders/:productionOrder/stop", wrapper.StopOrder)
	router.POST("/api/reels/events", wrapper.CreateReelEvent)
	router.GET("/api/machines/slitters", wrapper.GetSlitterMachines)
}
