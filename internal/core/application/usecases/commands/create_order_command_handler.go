package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrNoSuchDistrict is returned when an order names a district no courier has registered.
	ErrNoSuchDistrict = errors.New("no such district")

	// ErrNoFreeCourier is returned when every courier of the district is busy.
	ErrNoFreeCourier = errors.New("no free courier")
)

// CreateOrderResult identifies the created order and the courier it was dispatched to.
type CreateOrderResult struct {
	OrderID   kernel.ID
	CourierID kernel.ID
}

// CreateOrderCommandHandler matches an order to a free courier of its district and
// creates it bound to that courier.
//
// The district lock serializes matchers in one district. Candidates are locked one at
// a time in ascending id order and re-checked under the lock, so a courier claimed by
// a concurrent matcher in another district is skipped instead of claimed twice.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	cmd, _ := NewCreateOrderCommand("pizza", "center")
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory      UoWFactory
	orderDispatcher services.OrderDispatcher
	now             func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for order dispatch.
// Requires a UoWFactory spanning districts, couriers and orders.
func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:      uowFactory,
		orderDispatcher: services.NewOrderDispatcher(),
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// Handle claims the lowest-id free courier of the district, creates the order and
// binds it to the courier, all in one transaction.
//
// Returns:
//   - ErrNoSuchDistrict if the district is unknown
//   - ErrNoFreeCourier if no courier of the district is free
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	districtRepo := uow.DistrictRepository()
	courierRepo := uow.CourierRepository()
	orderRepo := uow.OrderRepository()

	d, err := districtRepo.GetForUpdate(ctx, cmd.District())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return CreateOrderResult{}, fmt.Errorf("%w: %s: %w", ErrNoSuchDistrict, cmd.District(), err)
		}
		return CreateOrderResult{}, err
	}

	candidates, err := courierRepo.GetAllFreeInDistrict(ctx, d.Name())
	if err != nil {
		return CreateOrderResult{}, err
	}

	token := kernel.NewClaimToken()
	for _, candidate := range h.orderDispatcher.Rank(candidates) {
		locked, err := courierRepo.GetForUpdate(ctx, candidate.ID())
		if err != nil {
			return CreateOrderResult{}, err
		}

		err = h.orderDispatcher.Dispatch(d, locked, token)
		if errors.Is(err, services.ErrCourierIsBusy) || errors.Is(err, services.ErrCourierOutOfDistrict) {
			continue
		}
		if err != nil {
			return CreateOrderResult{}, err
		}

		orderID, err := orderRepo.NextID(ctx)
		if err != nil {
			return CreateOrderResult{}, err
		}

		o, err := order.NewOrder(orderID, cmd.Name(), d.Name(), locked.ID(), h.now())
		if err != nil {
			return CreateOrderResult{}, err
		}

		if err = locked.BindOrder(token, o.ID()); err != nil {
			return CreateOrderResult{}, err
		}

		if err = orderRepo.Add(ctx, o); err != nil {
			return CreateOrderResult{}, err
		}

		if err = courierRepo.Update(ctx, locked); err != nil {
			return CreateOrderResult{}, err
		}

		if err = uow.Commit(ctx); err != nil {
			return CreateOrderResult{}, err
		}

		return CreateOrderResult{OrderID: o.ID(), CourierID: locked.ID()}, nil
	}

	return CreateOrderResult{}, fmt.Errorf("%w for district %s", ErrNoFreeCourier, d.Name())
}
