package memory

import (
	"slices"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/district"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// Rows are the stored representation of aggregates. Domain objects are rebuilt from
// rows on every read, so callers never share mutable state with the store.

type districtRow struct {
	name    string
	members []kernel.ID
}

type courierRow struct {
	id                   kernel.ID
	name                 string
	districts            []string
	claimToken           kernel.ClaimToken
	activeOrderID        kernel.ID
	avgOrderCompleteTime *time.Duration
	avgDayOrders         int
}

type orderRow struct {
	id          kernel.ID
	name        string
	district    string
	courierID   kernel.ID
	status      order.Status
	startedAt   time.Time
	completedAt *time.Time
}

func (r *districtRow) clone() *districtRow {
	return &districtRow{name: r.name, members: slices.Clone(r.members)}
}

func (r *districtRow) toDomain() (*district.District, error) {
	return district.RestoreDistrict(r.name, r.members)
}

func courierFromDomain(c *courier.Courier) *courierRow {
	claim := c.ClaimSlot()
	orderID, _ := claim.OrderID()
	stats := c.Statistics()

	var avg *time.Duration
	if stats.AvgOrderCompleteTime != nil {
		d := *stats.AvgOrderCompleteTime
		avg = &d
	}

	return &courierRow{
		id:                   c.ID(),
		name:                 c.Name(),
		districts:            c.Districts(),
		claimToken:           claim.Token(),
		activeOrderID:        orderID,
		avgOrderCompleteTime: avg,
		avgDayOrders:         stats.AvgDayOrders,
	}
}

func (r *courierRow) isFree() bool {
	return r.claimToken.IsZero() && r.activeOrderID.IsZero()
}

func (r *courierRow) serves(name string) bool {
	return slices.Contains(r.districts, name)
}

func (r *courierRow) toDomain() (*courier.Courier, error) {
	claim, err := courier.RestoreClaim(r.claimToken, r.activeOrderID)
	if err != nil {
		return nil, err
	}

	var avg *time.Duration
	if r.avgOrderCompleteTime != nil {
		d := *r.avgOrderCompleteTime
		avg = &d
	}

	return courier.RestoreCourier(r.id, r.name, slices.Clone(r.districts), claim, courier.Statistics{
		AvgOrderCompleteTime: avg,
		AvgDayOrders:         r.avgDayOrders,
	})
}

func orderFromDomain(o *order.Order) *orderRow {
	return &orderRow{
		id:          o.ID(),
		name:        o.Name(),
		district:    o.District(),
		courierID:   o.CourierID(),
		status:      o.Status(),
		startedAt:   o.StartedAt(),
		completedAt: o.CompletedAt(),
	}
}

func (r *orderRow) toDomain() (*order.Order, error) {
	return order.RestoreOrder(r.id, r.name, r.district, r.courierID, r.status, r.startedAt, r.completedAt)
}
