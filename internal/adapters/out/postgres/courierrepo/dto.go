// Package courierrepo provides data transfer objects and mapping functions for courier persistence.
// This package implements the repository pattern for the courier domain aggregate, handling
// the conversion between domain entities and database representations.
package courierrepo

import (
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier aggregates.
//
// The claim slot maps to two nullable columns: claim_token is set while a dispatch
// holds a reservation, active_order_id once the order is bound. Both NULL means free.
// Districts keep their first-seen order in a JSON array; the district registry's
// membership table is what queries filter on.
type CourierDTO struct {
	ID                   int64      `gorm:"primaryKey"`
	Name                 string     `gorm:"type:varchar(255);not null"`
	Districts            []string   `gorm:"type:jsonb;serializer:json;not null"`
	ClaimToken           *uuid.UUID `gorm:"type:uuid"`
	ActiveOrderID        *int64     `gorm:"index"`
	AvgOrderCompleteTime *int64     `gorm:"column:avg_order_complete_time_ns"`
	AvgDayOrders         int        `gorm:"type:int;not null;default:0"`
}

// TableName specifies the database table name for courier entities.
// Overrides GORM's default naming convention to use "couriers" instead of "courier_dtos".
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier domain aggregate to its database representation.
func fromDomain(c *courier.Courier) CourierDTO {
	dto := CourierDTO{
		ID:           c.ID().Int64(),
		Name:         c.Name(),
		Districts:    c.Districts(),
		AvgDayOrders: c.AvgDayOrders(),
	}

	claim := c.ClaimSlot()
	if !claim.Token().IsZero() {
		token := uuid.MustParse(claim.Token().String())
		dto.ClaimToken = &token
	}
	if orderID, ok := claim.OrderID(); ok {
		raw := orderID.Int64()
		dto.ActiveOrderID = &raw
	}
	if avg := c.AvgOrderCompleteTime(); avg != nil {
		ns := avg.Nanoseconds()
		dto.AvgOrderCompleteTime = &ns
	}

	return dto
}

// toDomain rebuilds the aggregate, claim slot and statistics included, via RestoreCourier.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.NewID(dto.ID)
	if err != nil {
		return nil, err
	}

	var token kernel.ClaimToken
	if dto.ClaimToken != nil {
		token, err = kernel.ClaimTokenFromString(dto.ClaimToken.String())
		if err != nil {
			return nil, err
		}
	}

	var orderID kernel.ID
	if dto.ActiveOrderID != nil {
		orderID, err = kernel.NewID(*dto.ActiveOrderID)
		if err != nil {
			return nil, err
		}
	}

	claim, err := courier.RestoreClaim(token, orderID)
	if err != nil {
		return nil, err
	}

	var avg *time.Duration
	if dto.AvgOrderCompleteTime != nil {
		d := time.Duration(*dto.AvgOrderCompleteTime)
		avg = &d
	}

	return courier.RestoreCourier(id, dto.Name, dto.Districts, claim, courier.Statistics{
		AvgOrderCompleteTime: avg,
		AvgDayOrders:         dto.AvgDayOrders,
	})
}
