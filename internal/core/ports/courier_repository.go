// Package ports defines repository interfaces for the dispatch domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
//
// Methods ending in ForUpdate lock the courier for the rest of the unit of work.
// Within a unit of work every read observes the writes already staged by it.
type CourierRepository interface {
	// NextID allocates a fresh courier identifier. Identifiers are never reused,
	// even when the unit of work that allocated one is rolled back.
	NextID(ctx context.Context) (kernel.ID, error)

	// Add persists a new courier aggregate.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists the claim slot and statistics of an existing courier.
	Update(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier by id.
	// Returns errs.ErrObjectNotFound when there is no such courier.
	Get(ctx context.Context, id kernel.ID) (*courier.Courier, error)

	// GetForUpdate is Get plus an exclusive lock on the courier.
	GetForUpdate(ctx context.Context, id kernel.ID) (*courier.Courier, error)

	// GetAll returns every courier ordered by id. An empty store yields an empty slice.
	GetAll(ctx context.Context) ([]*courier.Courier, error)

	// GetAllFreeInDistrict returns couriers serving the district whose claim slot is
	// empty, ordered by id. The result is a snapshot; callers must re-check each
	// candidate under GetForUpdate before claiming it.
	//
	// Example:
	//   candidates, err := repo.GetAllFreeInDistrict(ctx, "center")
	//   for _, c := range candidates {
	//       locked, err := repo.GetForUpdate(ctx, c.ID())
	//       ...
	//   }
	GetAllFreeInDistrict(ctx context.Context, district string) ([]*courier.Courier, error)
}
