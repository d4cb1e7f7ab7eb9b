package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetCourierQueryIsNotConstructed = errors.New(
	"GetCourierQuery must be created via NewGetCourierQuery constructor",
)

// GetCourierQuery retrieves one courier with its districts, active order and statistics.
type GetCourierQuery struct {
	courierID kernel.ID
	guard     guard.ConstructorGuard
}

// NewGetCourierQuery validates the courier id.
func NewGetCourierQuery(courierID kernel.ID) (GetCourierQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetCourierQuery{}, err
	}
	return GetCourierQuery{courierID: courierID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierQueryIsNotConstructed)
}

// CourierID returns the requested courier.
func (q GetCourierQuery) CourierID() kernel.ID {
	return q.courierID
}

// ActiveOrderResponse names the order a courier is carrying.
type ActiveOrderResponse struct {
	OrderID   kernel.ID
	OrderName string
}

// GetCourierQueryResponse is the courier detail read model.
// ActiveOrder and AvgOrderCompleteTime are nil when not applicable.
type GetCourierQueryResponse struct {
	ID                   kernel.ID
	Name                 string
	Districts            []string
	ActiveOrder          *ActiveOrderResponse
	AvgOrderCompleteTime *time.Duration
	AvgDayOrders         int
}
