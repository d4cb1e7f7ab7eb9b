package services

import (
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// StatisticsAggregator recomputes a courier's performance aggregates from its full
// order history. The result depends only on the set of completed orders, so running
// it again over the same history yields the same statistics.
//
// Aggregates:
//   - AvgOrderCompleteTime: mean of completedAt - startedAt over completed orders, nil when none
//   - AvgDayOrders: completed orders divided by the number of distinct completion dates,
//     rounded down; 0 when none
//
// Completion dates are taken in the location of each completedAt value.
type StatisticsAggregator struct{}

// NewStatisticsAggregator creates a new StatisticsAggregator instance.
func NewStatisticsAggregator() StatisticsAggregator {
	return StatisticsAggregator{}
}

type calendarDate struct {
	year  int
	month time.Month
	day   int
}

// Aggregate computes statistics for courierID over history. In-progress orders are ignored.
//
// Returns an errs.ErrInvariantViolation error if history contains an order bound to
// another courier.
func (s StatisticsAggregator) Aggregate(courierID kernel.ID, history []*order.Order) (courier.Statistics, error) {
	var (
		total     time.Duration
		completed int
		days      = make(map[calendarDate]struct{})
	)

	for _, o := range history {
		if err := o.Validate(); err != nil {
			return courier.Statistics{}, err
		}
		if o.CourierID() != courierID {
			return courier.Statistics{}, errs.NewInvariantViolationError("order", o.ID(),
				fmt.Errorf("bound to courier %s, aggregated for courier %s", o.CourierID(), courierID))
		}

		d, ok := o.Duration()
		if !ok {
			continue
		}
		total += d
		completed++
		year, month, day := o.CompletedAt().Date()
		days[calendarDate{year: year, month: month, day: day}] = struct{}{}
	}

	if completed == 0 {
		return courier.Statistics{}, nil
	}

	avg := total / time.Duration(completed)
	return courier.Statistics{
		AvgOrderCompleteTime: &avg,
		AvgDayOrders:         completed / len(days),
	}, nil
}
