package http

import (
	"errors"
	"fmt"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createCourierHandler commands.CreateCourierCommandHandler
	createOrderHandler   commands.CreateOrderCommandHandler
	completeOrderHandler commands.CompleteOrderCommandHandler

	// Query handlers
	getAllCouriersHandler  queries.GetAllCouriersQueryHandler
	getCourierHandler      queries.GetCourierQueryHandler
	getOrderHandler        queries.GetOrderQueryHandler
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler
	getDistrictHandler     queries.GetDistrictQueryHandler

	log *zap.Logger
}

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateCourier commands.CreateCourierCommandHandler
	CreateOrder   commands.CreateOrderCommandHandler
	CompleteOrder commands.CompleteOrderCommandHandler

	GetAllCouriers  queries.GetAllCouriersQueryHandler
	GetCourier      queries.GetCourierQueryHandler
	GetOrder        queries.GetOrderQueryHandler
	GetActiveOrders queries.GetActiveOrdersQueryHandler
	GetDistrict     queries.GetDistrictQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(h Handlers, log *zap.Logger) *Server {
	return &Server{
		createCourierHandler:   h.CreateCourier,
		createOrderHandler:     h.CreateOrder,
		completeOrderHandler:   h.CompleteOrder,
		getAllCouriersHandler:  h.GetAllCouriers,
		getCourierHandler:      h.GetCourier,
		getOrderHandler:        h.GetOrder,
		getActiveOrdersHandler: h.GetActiveOrders,
		getDistrictHandler:     h.GetDistrict,
		log:                    log,
	}
}

// CreateCourier handles POST /courier - registers a courier in its districts.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var body NewCourier
	if err := ctx.Bind(&body); err != nil {
		return s.invalid(ctx, "body", err)
	}

	cmd, err := commands.NewCreateCourierCommand(body.Name, body.Districts)
	if err != nil {
		return s.invalid(ctx, "body", err)
	}

	id, err := s.createCourierHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if isValidationError(err) {
			return s.invalid(ctx, "body", err)
		}
		return s.unforeseen(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CourierCreated{Message: "Courier created successfully", ID: id.Int64()})
}

// GetCouriers handles GET /courier - lists couriers ordered by id.
func (s *Server) GetCouriers(ctx echo.Context) error {
	couriers, err := s.getAllCouriersHandler.Handle(ctx.Request().Context(), queries.NewGetAllCouriersQuery())
	if err != nil {
		if errors.Is(err, errs.ErrEmptyCollection) {
			return s.fail(ctx, http.StatusNotFound, "No couriers in DB")
		}
		return s.unforeseen(ctx, err)
	}

	response := make([]CourierInfo, len(couriers))
	for i, c := range couriers {
		response[i] = CourierInfo{ID: c.ID.Int64(), Name: c.Name}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetCourier handles GET /courier/{courier_id} - courier detail with active order and statistics.
func (s *Server) GetCourier(ctx echo.Context, courierID int64) error {
	notFound := fmt.Sprintf("No courier with id=%d", courierID)

	id, err := kernel.NewID(courierID)
	if err != nil {
		return s.fail(ctx, http.StatusNotFound, notFound)
	}

	query, err := queries.NewGetCourierQuery(id)
	if err != nil {
		return s.fail(ctx, http.StatusNotFound, notFound)
	}

	c, err := s.getCourierHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if notFoundOf(err, "courier") {
			return s.fail(ctx, http.StatusNotFound, notFound)
		}
		return s.unforeseen(ctx, err)
	}

	response := Courier{
		ID:           c.ID.Int64(),
		Name:         c.Name,
		Districts:    make([]DistrictRef, len(c.Districts)),
		AvgDayOrders: c.AvgDayOrders,
	}
	for i, d := range c.Districts {
		response.Districts[i] = DistrictRef{Name: d}
	}
	if c.ActiveOrder != nil {
		response.ActiveOrder = &ActiveOrderRef{OrderID: c.ActiveOrder.OrderID.Int64(), OrderName: c.ActiveOrder.OrderName}
	}
	if c.AvgOrderCompleteTime != nil {
		seconds := c.AvgOrderCompleteTime.Seconds()
		response.AvgOrderCompleteTime = &seconds
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /order - dispatches an order to the lowest-id free courier
// of its district.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return s.invalid(ctx, "body", err)
	}

	cmd, err := commands.NewCreateOrderCommand(body.Name, body.District)
	if err != nil {
		return s.invalid(ctx, "body", err)
	}

	result, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case err == nil:
		metrics.RecordDispatch(metrics.OutcomeDispatched)
	case errors.Is(err, commands.ErrNoSuchDistrict):
		metrics.RecordDispatch(metrics.OutcomeNoSuchDistrict)
		return s.fail(ctx, http.StatusNotFound, "No district with name="+body.District)
	case errors.Is(err, commands.ErrNoFreeCourier):
		metrics.RecordDispatch(metrics.OutcomeNoFreeCourier)
		return s.fail(ctx, http.StatusNotFound, "No free couriers for district with name="+body.District)
	default:
		metrics.RecordDispatch(metrics.OutcomeFailed)
		return s.unforeseen(ctx, err)
	}

	s.log.Info("order dispatched",
		zap.Int64("order_id", result.OrderID.Int64()),
		zap.Int64("courier_id", result.CourierID.Int64()),
		zap.String("district", body.District),
	)

	return ctx.JSON(http.StatusOK, OrderCreated{OrderID: result.OrderID.Int64(), CourierID: result.CourierID.Int64()})
}

// GetActiveOrders handles GET /order/active - orders in progress ordered by id.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetActiveOrdersQuery())
	if err != nil {
		return s.unforeseen(ctx, err)
	}

	response := make([]ActiveOrder, len(orders))
	for i, o := range orders {
		response[i] = ActiveOrder{
			OrderID:   o.ID.Int64(),
			Name:      o.Name,
			District:  o.District,
			CourierID: o.CourierID.Int64(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /order/{order_id} - courier and numeric status of an order.
func (s *Server) GetOrder(ctx echo.Context, orderID int64) error {
	notFound := fmt.Sprintf("No order with id=%d", orderID)

	id, err := kernel.NewID(orderID)
	if err != nil {
		return s.fail(ctx, http.StatusNotFound, notFound)
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.fail(ctx, http.StatusNotFound, notFound)
	}

	o, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if notFoundOf(err, "order") {
			return s.fail(ctx, http.StatusNotFound, notFound)
		}
		return s.unforeseen(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderInfo{CourierID: o.CourierID.Int64(), Status: int(o.Status)})
}

// CompleteOrder handles POST /order/{order_id} - completes an order and frees its courier.
func (s *Server) CompleteOrder(ctx echo.Context, orderID int64) error {
	notFound := fmt.Sprintf("No order with id=%d", orderID)

	id, err := kernel.NewID(orderID)
	if err != nil {
		return s.fail(ctx, http.StatusNotFound, notFound)
	}

	cmd, err := commands.NewCompleteOrderCommand(id)
	if err != nil {
		return s.fail(ctx, http.StatusNotFound, notFound)
	}

	result, err := s.completeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		switch {
		case notFoundOf(err, "order"):
			return s.fail(ctx, http.StatusNotFound, notFound)
		case errors.Is(err, order.ErrAlreadyCompleted):
			return s.fail(ctx, http.StatusBadRequest, "Order is already completed")
		default:
			return s.unforeseen(ctx, err)
		}
	}

	metrics.RecordCompletion(result.Duration)
	s.log.Info("order completed",
		zap.Int64("order_id", result.OrderID.Int64()),
		zap.Int64("courier_id", result.CourierID.Int64()),
		zap.Duration("duration", result.Duration),
	)

	return ctx.JSON(http.StatusOK, Message{Message: "Order completed successfully"})
}

// GetDistrict handles GET /district/{name} - members and currently free couriers.
func (s *Server) GetDistrict(ctx echo.Context, name string) error {
	notFound := "No district with name=" + name

	query, err := queries.NewGetDistrictQuery(name)
	if err != nil {
		return s.invalid(ctx, "path", err)
	}

	d, err := s.getDistrictHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if notFoundOf(err, "district") {
			return s.fail(ctx, http.StatusNotFound, notFound)
		}
		return s.unforeseen(ctx, err)
	}

	return ctx.JSON(http.StatusOK, District{
		Name:         d.Name,
		Couriers:     toInt64s(d.Couriers),
		FreeCouriers: toInt64s(d.FreeCouriers),
	})
}

func toInt64s(ids []kernel.ID) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = id.Int64()
	}
	return out
}
