package memory

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// CourierRepository implements ports.CourierRepository over a Store.
type CourierRepository struct {
	uow *UnitOfWork
}

// NextID allocates ids from a store-wide counter starting at 1.
func (r *CourierRepository) NextID(ctx context.Context) (kernel.ID, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return kernel.NewID(r.uow.store.courierSeq.Add(1))
}

// Add stages a new courier. The id must not be in use.
func (r *CourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, exists := r.uow.courierRow(aggregate.ID()); exists {
		return errs.NewValueIsInvalidErrorWithCause("courier", fmt.Errorf("id %s is already in use", aggregate.ID()))
	}

	r.uow.stagedCouriers[aggregate.ID()] = courierFromDomain(aggregate)
	r.uow.flush()
	return nil
}

// Update stages the new state of an existing courier.
func (r *CourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, exists := r.uow.courierRow(aggregate.ID()); !exists {
		return errs.NewObjectNotFoundError("courier", aggregate.ID())
	}

	r.uow.stagedCouriers[aggregate.ID()] = courierFromDomain(aggregate)
	r.uow.flush()
	return nil
}

// Get retrieves a courier by id.
func (r *CourierRepository) Get(ctx context.Context, id kernel.ID) (*courier.Courier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.get(id)
}

// GetForUpdate locks the courier, then reads it, so the result reflects every commit
// made by the previous lock holder.
func (r *CourierRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*courier.Courier, error) {
	if _, ok := r.uow.courierRow(id); !ok {
		return nil, errs.NewObjectNotFoundError("courier", id)
	}

	if err := r.uow.lock(ctx, courierLock(id)); err != nil {
		return nil, err
	}

	return r.get(id)
}

// GetAll returns every courier ordered by id.
func (r *CourierRepository) GetAll(ctx context.Context) ([]*courier.Courier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return toCouriers(r.uow.courierRows(), nil)
}

// GetAllFreeInDistrict returns free couriers serving the district ordered by id.
func (r *CourierRepository) GetAllFreeInDistrict(ctx context.Context, name string) ([]*courier.Courier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return toCouriers(r.uow.courierRows(), func(row *courierRow) bool {
		return row.isFree() && row.serves(name)
	})
}

func (r *CourierRepository) get(id kernel.ID) (*courier.Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	row, ok := r.uow.courierRow(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("courier", id)
	}
	return row.toDomain()
}

func toCouriers(rows []*courierRow, keep func(*courierRow) bool) ([]*courier.Courier, error) {
	couriers := make([]*courier.Courier, 0, len(rows))
	for _, row := range rows {
		if keep != nil && !keep(row) {
			continue
		}
		c, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		couriers = append(couriers, c)
	}
	return couriers, nil
}
