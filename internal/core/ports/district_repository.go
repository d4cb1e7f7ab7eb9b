package ports

import (
	"context"

	"dispatch/internal/core/domain/model/district"
	"dispatch/internal/core/domain/model/kernel"
)

// DistrictRepository defines the persistence contract for districts.
// Districts are created on first reference and never deleted.
type DistrictRepository interface {
	// ResolveOrCreate returns the districts with the given names in input order,
	// creating the missing ones. Duplicate names collapse to their first occurrence.
	// Concurrent calls create each distinct name exactly once.
	ResolveOrCreate(ctx context.Context, names []string) ([]*district.District, error)

	// Get retrieves a district and its members.
	// Returns errs.ErrObjectNotFound when there is no such district.
	Get(ctx context.Context, name string) (*district.District, error)

	// GetForUpdate is Get plus the district's exclusive dispatch lock. Holding it
	// serializes matchers working in the same district.
	GetForUpdate(ctx context.Context, name string) (*district.District, error)

	// AddMember records that the courier serves the district. Idempotent.
	AddMember(ctx context.Context, name string, courierID kernel.ID) error
}
