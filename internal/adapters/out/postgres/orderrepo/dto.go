// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by courier for statistics recomputation and by status for the active list.
type OrderDTO struct {
	ID          int64      `gorm:"primaryKey"`
	Name        string     `gorm:"type:varchar(255);not null"`
	District    string     `gorm:"type:varchar(255);not null;index"`
	CourierID   int64      `gorm:"not null;index"`
	Status      int        `gorm:"type:smallint;not null;index"`
	StartedAt   time.Time  `gorm:"not null"`
	CompletedAt *time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:          o.ID().Int64(),
		Name:        o.Name(),
		District:    o.District(),
		CourierID:   o.CourierID().Int64(),
		Status:      int(o.Status()),
		StartedAt:   o.StartedAt(),
		CompletedAt: o.CompletedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate via RestoreOrder.
// Timestamps come back from the driver in the session time zone and are normalized to UTC.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.NewID(dto.ID)
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.NewID(dto.CourierID)
	if err != nil {
		return nil, err
	}

	var completedAt *time.Time
	if dto.CompletedAt != nil {
		at := dto.CompletedAt.UTC()
		completedAt = &at
	}

	return order.RestoreOrder(
		id,
		dto.Name,
		dto.District,
		courierID,
		order.Status(dto.Status),
		dto.StartedAt.UTC(),
		completedAt,
	)
}
