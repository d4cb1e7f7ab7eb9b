package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
)

// RecomputeCourierStatisticsCommandHandler re-aggregates statistics courier by courier.
// Each courier is refreshed in its own transaction under its lock, so the job never
// blocks dispatch for longer than one courier's recomputation.
type RecomputeCourierStatisticsCommandHandler struct {
	uowFactory           UoWFactory
	statisticsAggregator services.StatisticsAggregator
}

// NewRecomputeCourierStatisticsCommandHandler creates the handler.
func NewRecomputeCourierStatisticsCommandHandler(uowFactory UoWFactory) RecomputeCourierStatisticsCommandHandler {
	return RecomputeCourierStatisticsCommandHandler{
		uowFactory:           uowFactory,
		statisticsAggregator: services.NewStatisticsAggregator(),
	}
}

// Handle returns the number of couriers whose stored statistics differed from the
// recomputed ones and were corrected.
func (h *RecomputeCourierStatisticsCommandHandler) Handle(
	ctx context.Context,
	cmd RecomputeCourierStatisticsCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	couriers, err := h.uowFactory.Create().CourierRepository().GetAll(ctx)
	if err != nil {
		return 0, err
	}

	corrected := 0
	for _, c := range couriers {
		changed, err := h.recompute(ctx, c.ID())
		if err != nil {
			return corrected, err
		}
		if changed {
			corrected++
		}
	}

	return corrected, nil
}

func (h *RecomputeCourierStatisticsCommandHandler) recompute(ctx context.Context, courierID kernel.ID) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.CourierRepository().GetForUpdate(ctx, courierID)
	if err != nil {
		return false, err
	}

	history, err := uow.OrderRepository().GetAllByCourier(ctx, courierID)
	if err != nil {
		return false, err
	}

	statistics, err := h.statisticsAggregator.Aggregate(courierID, history)
	if err != nil {
		return false, err
	}

	if statistics.IsEqual(c.Statistics()) {
		return false, nil
	}

	if err = c.UpdateStatistics(statistics); err != nil {
		return false, err
	}

	if err = uow.CourierRepository().Update(ctx, c); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}
