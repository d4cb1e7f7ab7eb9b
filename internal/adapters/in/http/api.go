package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Wire types of openapi.yaml.
type (
	NewCourier struct {
		Name      string   `json:"name"`
		Districts []string `json:"districts"`
	}

	CourierCreated struct {
		Message string `json:"message"`
		ID      int64  `json:"id"`
	}

	CourierInfo struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}

	DistrictRef struct {
		Name string `json:"name"`
	}

	ActiveOrderRef struct {
		OrderID   int64  `json:"order_id"`
		OrderName string `json:"order_name"`
	}

	Courier struct {
		ID          int64           `json:"id"`
		Name        string          `json:"name"`
		Districts   []DistrictRef   `json:"districts"`
		ActiveOrder *ActiveOrderRef `json:"active_order"`
		// AvgOrderCompleteTime is in seconds.
		AvgOrderCompleteTime *float64 `json:"avg_order_complete_time"`
		AvgDayOrders         int      `json:"avg_day_orders"`
	}

	NewOrder struct {
		Name     string `json:"name"`
		District string `json:"district"`
	}

	OrderCreated struct {
		OrderID   int64 `json:"order_id"`
		CourierID int64 `json:"courier_id"`
	}

	OrderInfo struct {
		CourierID int64 `json:"courier_id"`
		Status    int   `json:"status"`
	}

	ActiveOrder struct {
		OrderID   int64  `json:"order_id"`
		Name      string `json:"name"`
		District  string `json:"district"`
		CourierID int64  `json:"courier_id"`
	}

	District struct {
		Name         string  `json:"name"`
		Couriers     []int64 `json:"couriers"`
		FreeCouriers []int64 `json:"free_couriers"`
	}

	Message struct {
		Message string `json:"message"`
	}

	Error struct {
		Error string `json:"error"`
	}

	ValidationIssue struct {
		Type  string   `json:"type"`
		Loc   []string `json:"loc"`
		Msg   string   `json:"msg"`
		Input any      `json:"input,omitempty"`
	}

	ValidationError struct {
		Detail []ValidationIssue `json:"detail"`
	}
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (POST /courier)
	CreateCourier(ctx echo.Context) error
	// (GET /courier)
	GetCouriers(ctx echo.Context) error
	// (GET /courier/{courier_id})
	GetCourier(ctx echo.Context, courierID int64) error
	// (POST /order)
	CreateOrder(ctx echo.Context) error
	// (GET /order/active)
	GetActiveOrders(ctx echo.Context) error
	// (GET /order/{order_id})
	GetOrder(ctx echo.Context, orderID int64) error
	// (POST /order/{order_id})
	CompleteOrder(ctx echo.Context, orderID int64) error
	// (GET /district/{name})
	GetDistrict(ctx echo.Context, name string) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) CreateCourier(ctx echo.Context) error {
	return w.Handler.CreateCourier(ctx)
}

func (w *ServerInterfaceWrapper) GetCouriers(ctx echo.Context) error {
	return w.Handler.GetCouriers(ctx)
}

func (w *ServerInterfaceWrapper) GetCourier(ctx echo.Context) error {
	var courierID int64
	if err := bindPathParam(ctx, "courier_id", &courierID); err != nil {
		return invalidPathParam(ctx, "courier_id", err)
	}
	return w.Handler.GetCourier(ctx, courierID)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetActiveOrders(ctx echo.Context) error {
	return w.Handler.GetActiveOrders(ctx)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	var orderID int64
	if err := bindPathParam(ctx, "order_id", &orderID); err != nil {
		return invalidPathParam(ctx, "order_id", err)
	}
	return w.Handler.GetOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) CompleteOrder(ctx echo.Context) error {
	var orderID int64
	if err := bindPathParam(ctx, "order_id", &orderID); err != nil {
		return invalidPathParam(ctx, "order_id", err)
	}
	return w.Handler.CompleteOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) GetDistrict(ctx echo.Context) error {
	var name string
	if err := bindPathParam(ctx, "name", &name); err != nil {
		return invalidPathParam(ctx, "name", err)
	}
	return w.Handler.GetDistrict(ctx, name)
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.POST("/courier", wrapper.CreateCourier)
	router.GET("/courier", wrapper.GetCouriers)
	router.GET("/courier/:courier_id", wrapper.GetCourier)
	router.POST("/order", wrapper.CreateOrder)
	router.GET("/order/active", wrapper.GetActiveOrders)
	router.GET("/order/:order_id", wrapper.GetOrder)
	router.POST("/order/:order_id", wrapper.CompleteOrder)
	router.GET("/district/:name", wrapper.GetDistrict)
}

func bindPathParam(ctx echo.Context, name string, dest any) error {
	return runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
}

// invalidPathParam answers a parameter that passed schema validation but still could
// not be decoded the same way as a schema violation.
func invalidPathParam(ctx echo.Context, name string, err error) error {
	return ctx.JSON(http.StatusUnprocessableEntity, ValidationError{Detail: []ValidationIssue{{
		Type:  "parameter",
		Loc:   []string{"path", name},
		Msg:   fmt.Sprintf("Invalid format for parameter %s: %v", name, err),
		Input: ctx.Param(name),
	}}})
}
