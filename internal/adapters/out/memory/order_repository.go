package memory

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// OrderRepository implements ports.OrderRepository over a Store.
type OrderRepository struct {
	uow *UnitOfWork
}

// NextID allocates ids from a store-wide counter starting at 1.
func (r *OrderRepository) NextID(ctx context.Context) (kernel.ID, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return kernel.NewID(r.uow.store.orderSeq.Add(1))
}

// Add stages a new order. The id must not be in use.
func (r *OrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, exists := r.uow.orderRow(aggregate.ID()); exists {
		return errs.NewValueIsInvalidErrorWithCause("order", fmt.Errorf("id %s is already in use", aggregate.ID()))
	}

	r.uow.stagedOrders[aggregate.ID()] = orderFromDomain(aggregate)
	r.uow.flush()
	return nil
}

// Update stages the new state of an existing order. The courier of an order is fixed
// at creation; an update that changes it is rejected.
func (r *OrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}
	current, exists := r.uow.orderRow(aggregate.ID())
	if !exists {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}
	if current.courierID != aggregate.CourierID() {
		return errs.NewInvariantViolationError("order", aggregate.ID(),
			fmt.Errorf("courier changed from %s to %s", current.courierID, aggregate.CourierID()))
	}

	r.uow.stagedOrders[aggregate.ID()] = orderFromDomain(aggregate)
	r.uow.flush()
	return nil
}

// Get retrieves an order by id.
func (r *OrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.get(id)
}

// GetForUpdate locks the order, then reads it.
func (r *OrderRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error) {
	if _, ok := r.uow.orderRow(id); !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}

	if err := r.uow.lock(ctx, orderLock(id)); err != nil {
		return nil, err
	}

	return r.get(id)
}

// GetAllByCourier returns the courier's orders, including those staged by this unit of work.
func (r *OrderRepository) GetAllByCourier(ctx context.Context, courierID kernel.ID) ([]*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := courierID.Validate(); err != nil {
		return nil, err
	}
	return toOrders(r.uow.orderRows(courierID, nil))
}

// GetAllInProgress returns every order that is not completed, ordered by id.
func (r *OrderRepository) GetAllInProgress(ctx context.Context) ([]*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return toOrders(r.uow.orderRows(0, func(row *orderRow) bool {
		return row.status == order.InProgress
	}))
}

func (r *OrderRepository) get(id kernel.ID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	row, ok := r.uow.orderRow(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return row.toDomain()
}

func toOrders(rows []*orderRow) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(rows))
	for _, row := range rows {
		o, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
