package memory

import (
	"context"
	"strings"

	"dispatch/internal/core/domain/model/district"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// DistrictRepository implements ports.DistrictRepository over a Store.
type DistrictRepository struct {
	uow *UnitOfWork
}

// ResolveOrCreate creates missing districts immediately under the store's write lock,
// so concurrent callers agree on a single row per name. Districts are never removed,
// which makes creating them ahead of the surrounding commit harmless.
func (r *DistrictRepository) ResolveOrCreate(ctx context.Context, names []string) ([]*district.District, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	unique := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, district.ErrNameIsRequired
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
	}

	s := r.uow.store
	s.mu.Lock()
	for _, name := range unique {
		if _, ok := s.districts[name]; !ok {
			s.districts[name] = &districtRow{name: name}
		}
	}
	s.mu.Unlock()

	districts := make([]*district.District, 0, len(unique))
	for _, name := range unique {
		d, err := r.get(name)
		if err != nil {
			return nil, err
		}
		districts = append(districts, d)
	}

	return districts, nil
}

// Get retrieves a district with its members.
func (r *DistrictRepository) Get(ctx context.Context, name string) (*district.District, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.get(name)
}

// GetForUpdate takes the district's dispatch lock before reading it.
func (r *DistrictRepository) GetForUpdate(ctx context.Context, name string) (*district.District, error) {
	if _, ok := r.uow.districtRow(name); !ok {
		return nil, errs.NewObjectNotFoundError("district", name)
	}

	if err := r.uow.lock(ctx, districtLock(name)); err != nil {
		return nil, err
	}

	return r.get(name)
}

// AddMember stages the membership; it is applied with the rest of the unit of work.
func (r *DistrictRepository) AddMember(ctx context.Context, name string, courierID kernel.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := courierID.Validate(); err != nil {
		return err
	}
	if _, ok := r.uow.districtRow(name); !ok {
		return errs.NewObjectNotFoundError("district", name)
	}

	r.uow.stagedMembers[name] = append(r.uow.stagedMembers[name], courierID)
	r.uow.flush()
	return nil
}

func (r *DistrictRepository) get(name string) (*district.District, error) {
	row, ok := r.uow.districtRow(name)
	if !ok {
		return nil, errs.NewObjectNotFoundError("district", name)
	}
	return row.toDomain()
}
