package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
)

// CompleteOrderResult describes a finished order for callers that report on it.
type CompleteOrderResult struct {
	OrderID   kernel.ID
	CourierID kernel.ID
	Duration  time.Duration
}

// CompleteOrderCommandHandler completes an order, frees its courier and refreshes the
// courier's statistics in one transaction.
//
// The courier is locked before the order, matching the District, Courier, Order lock
// order used by dispatch. The order's courier never changes, so reading it before
// taking the locks is safe.
//
// Example:
//
//	handler := NewCompleteOrderCommandHandler(uowFactory)
//	cmd, _ := NewCompleteOrderCommand(orderID)
//
//	if _, err := handler.Handle(ctx, cmd); errors.Is(err, order.ErrAlreadyCompleted) {
//	    // reported twice
//	}
type CompleteOrderCommandHandler struct {
	uowFactory           UoWFactory
	statisticsAggregator services.StatisticsAggregator
	now                  func() time.Time
}

// NewCompleteOrderCommandHandler creates a handler for order completion.
func NewCompleteOrderCommandHandler(uowFactory UoWFactory) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory:           uowFactory,
		statisticsAggregator: services.NewStatisticsAggregator(),
		now:                  func() time.Time { return time.Now().UTC() },
	}
}

// Handle completes the order.
//
// Returns:
//   - errs.ErrObjectNotFound if there is no such order
//   - order.ErrAlreadyCompleted if it was completed before; nothing changes
//   - errs.ErrInvariantViolation if the courier does not hold the order
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) (CompleteOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CompleteOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CompleteOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	orderRepo := uow.OrderRepository()

	snapshot, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return CompleteOrderResult{}, err
	}

	c, err := courierRepo.GetForUpdate(ctx, snapshot.CourierID())
	if err != nil {
		return CompleteOrderResult{}, err
	}

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return CompleteOrderResult{}, err
	}

	if err = o.Complete(h.now()); err != nil {
		return CompleteOrderResult{}, err
	}

	if err = c.Release(o.ID()); err != nil {
		return CompleteOrderResult{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return CompleteOrderResult{}, err
	}

	history, err := orderRepo.GetAllByCourier(ctx, c.ID())
	if err != nil {
		return CompleteOrderResult{}, err
	}

	statistics, err := h.statisticsAggregator.Aggregate(c.ID(), history)
	if err != nil {
		return CompleteOrderResult{}, err
	}

	if err = c.UpdateStatistics(statistics); err != nil {
		return CompleteOrderResult{}, err
	}

	if err = courierRepo.Update(ctx, c); err != nil {
		return CompleteOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CompleteOrderResult{}, err
	}

	duration, _ := o.Duration()
	return CompleteOrderResult{OrderID: o.ID(), CourierID: c.ID(), Duration: duration}, nil
}
