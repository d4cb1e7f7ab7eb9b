package memory

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"golang.org/x/sync/semaphore"
)

// ErrInvalidTransaction is returned by Commit and Rollback without a preceding Begin.
var ErrInvalidTransaction = errors.New("invalid transaction")

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

// NewUnitOfWorkFactory creates a factory for units of work sharing store.
func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// Create produces a new UnitOfWork. Each instance must be used by one goroutine.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return newUnitOfWork(f.store)
}

// UnitOfWork stages writes and holds entity locks between Begin and Commit/Rollback.
// Without Begin, reads see committed state and writes are applied immediately.
type UnitOfWork struct {
	store  *Store
	active bool

	held map[lockKey]*semaphore.Weighted

	stagedMembers  map[string][]kernel.ID
	stagedCouriers map[kernel.ID]*courierRow
	stagedOrders   map[kernel.ID]*orderRow
}

func newUnitOfWork(store *Store) *UnitOfWork {
	uow := &UnitOfWork{store: store}
	uow.reset()
	return uow
}

// Begin starts staging. Calling it on an active unit of work is a no-op.
func (uow *UnitOfWork) Begin(_ context.Context) error {
	uow.active = true
	return nil
}

// Commit applies every staged write under the store's write lock, so concurrent
// readers observe all of them or none, then releases the held entity locks.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrInvalidTransaction
	}

	uow.apply()
	uow.release()
	uow.active = false
	return nil
}

// Rollback drops staged writes and releases the held entity locks.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrInvalidTransaction
	}

	uow.reset()
	uow.release()
	uow.active = false
	return nil
}

// DistrictRepository returns the district registry bound to this unit of work.
func (uow *UnitOfWork) DistrictRepository() ports.DistrictRepository {
	return &DistrictRepository{uow: uow}
}

// CourierRepository returns the courier directory bound to this unit of work.
func (uow *UnitOfWork) CourierRepository() ports.CourierRepository {
	return &CourierRepository{uow: uow}
}

// OrderRepository returns the order repository bound to this unit of work.
func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{uow: uow}
}

// lock takes the entity lock for the rest of the unit of work. Outside of a
// transaction there is nothing to hold it for, so it is a no-op.
func (uow *UnitOfWork) lock(ctx context.Context, key lockKey) error {
	if !uow.active {
		return nil
	}
	if _, ok := uow.held[key]; ok {
		return nil
	}

	sem := uow.store.locks.get(key)
	if err := sem.Acquire(ctx, 1); err != nil {
		return err
	}
	uow.held[key] = sem
	return nil
}

func (uow *UnitOfWork) release() {
	for key, sem := range uow.held {
		sem.Release(1)
		delete(uow.held, key)
	}
}

func (uow *UnitOfWork) reset() {
	if uow.held == nil {
		uow.held = make(map[lockKey]*semaphore.Weighted)
	}
	uow.stagedMembers = make(map[string][]kernel.ID)
	uow.stagedCouriers = make(map[kernel.ID]*courierRow)
	uow.stagedOrders = make(map[kernel.ID]*orderRow)
}

// flush applies staged writes right away when no transaction is active.
func (uow *UnitOfWork) flush() {
	if uow.active {
		return
	}
	uow.apply()
}

func (uow *UnitOfWork) apply() {
	s := uow.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for name, members := range uow.stagedMembers {
		row, ok := s.districts[name]
		if !ok {
			row = &districtRow{name: name}
		}
		row = row.clone()
		for _, id := range members {
			row.members = insertSorted(row.members, id)
		}
		s.districts[name] = row
	}

	for id, row := range uow.stagedCouriers {
		s.couriers[id] = row
	}

	for id, row := range uow.stagedOrders {
		if _, exists := s.orders[id]; !exists {
			s.courierOrders[row.courierID] = insertSorted(s.courierOrders[row.courierID], id)
		}
		s.orders[id] = row
	}

	uow.reset()
}

func insertSorted(ids []kernel.ID, id kernel.ID) []kernel.ID {
	i, found := slices.BinarySearch(ids, id)
	if found {
		return ids
	}
	return slices.Insert(slices.Clip(ids), i, id)
}

// Read helpers merge staged rows over committed ones.

func (uow *UnitOfWork) districtRow(name string) (*districtRow, bool) {
	uow.store.mu.RLock()
	row, ok := uow.store.districts[name]
	uow.store.mu.RUnlock()

	staged, hasStaged := uow.stagedMembers[name]
	if !ok {
		return nil, false
	}
	if !hasStaged {
		return row, true
	}

	merged := row.clone()
	for _, id := range staged {
		merged.members = insertSorted(merged.members, id)
	}
	return merged, true
}

func (uow *UnitOfWork) courierRow(id kernel.ID) (*courierRow, bool) {
	if row, ok := uow.stagedCouriers[id]; ok {
		return row, true
	}

	uow.store.mu.RLock()
	defer uow.store.mu.RUnlock()
	row, ok := uow.store.couriers[id]
	return row, ok
}

func (uow *UnitOfWork) courierRows() []*courierRow {
	uow.store.mu.RLock()
	rows := make([]*courierRow, 0, len(uow.store.couriers)+len(uow.stagedCouriers))
	for id, row := range uow.store.couriers {
		if _, staged := uow.stagedCouriers[id]; staged {
			continue
		}
		rows = append(rows, row)
	}
	uow.store.mu.RUnlock()

	for _, row := range uow.stagedCouriers {
		rows = append(rows, row)
	}

	slices.SortFunc(rows, func(a, b *courierRow) int { return cmp.Compare(a.id, b.id) })
	return rows
}

func (uow *UnitOfWork) orderRow(id kernel.ID) (*orderRow, bool) {
	if row, ok := uow.stagedOrders[id]; ok {
		return row, true
	}

	uow.store.mu.RLock()
	defer uow.store.mu.RUnlock()
	row, ok := uow.store.orders[id]
	return row, ok
}

// orderRows returns committed and staged orders accepted by keep, ordered by id.
// A courier filter uses the per-courier index instead of scanning every order.
func (uow *UnitOfWork) orderRows(courierID kernel.ID, keep func(*orderRow) bool) []*orderRow {
	s := uow.store
	s.mu.RLock()
	var rows []*orderRow
	if courierID.IsZero() {
		rows = make([]*orderRow, 0, len(s.orders))
		for id, row := range s.orders {
			if _, staged := uow.stagedOrders[id]; !staged {
				rows = append(rows, row)
			}
		}
	} else {
		ids := s.courierOrders[courierID]
		rows = make([]*orderRow, 0, len(ids))
		for _, id := range ids {
			if _, staged := uow.stagedOrders[id]; !staged {
				rows = append(rows, s.orders[id])
			}
		}
	}
	s.mu.RUnlock()

	for _, row := range uow.stagedOrders {
		if courierID.IsZero() || row.courierID == courierID {
			rows = append(rows, row)
		}
	}

	out := rows[:0]
	for _, row := range rows {
		if keep == nil || keep(row) {
			out = append(out, row)
		}
	}

	slices.SortFunc(out, func(a, b *orderRow) int { return cmp.Compare(a.id, b.id) })
	return out
}
