package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// NextID allocates a fresh order identifier.
	NextID(ctx context.Context) (kernel.ID, error)

	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the status and completion time of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id.
	// Returns errs.ErrObjectNotFound when there is no such order.
	Get(ctx context.Context, id kernel.ID) (*order.Order, error)

	// GetForUpdate is Get plus an exclusive lock on the order.
	GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error)

	// GetAllByCourier returns the full order history of a courier ordered by id.
	GetAllByCourier(ctx context.Context, courierID kernel.ID) ([]*order.Order, error)

	// GetAllInProgress returns every order that is not completed yet, ordered by id.
	GetAllInProgress(ctx context.Context) ([]*order.Order, error)
}
