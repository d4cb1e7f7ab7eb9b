// Package memory provides an in-process implementation of the repository ports.
//
// Entities live in arena-style tables keyed by stable integer ids (district names for
// districts). Every entity has an exclusive lock taken by ForUpdate reads and held until
// the unit of work commits or rolls back. Writes made inside a unit of work are staged
// and become visible to other units of work all at once on Commit.
//
// Usage:
//
//	store := memory.NewStore()
//	factory := memory.NewUnitOfWorkFactory(store)
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	c, err := uow.CourierRepository().GetForUpdate(ctx, id)
//	...
//	return uow.Commit(ctx)
package memory

import (
	"sync"
	"sync/atomic"

	"dispatch/internal/core/domain/model/kernel"

	"golang.org/x/sync/semaphore"
)

// Store holds the committed state shared by all units of work.
type Store struct {
	// mu guards the three tables and the per-courier order index.
	mu        sync.RWMutex
	districts map[string]*districtRow
	couriers  map[kernel.ID]*courierRow
	orders    map[kernel.ID]*orderRow
	// courierOrders indexes order ids by courier in ascending order.
	courierOrders map[kernel.ID][]kernel.ID

	courierSeq atomic.Int64
	orderSeq   atomic.Int64

	locks *lockTable
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		districts:     make(map[string]*districtRow),
		couriers:      make(map[kernel.ID]*courierRow),
		orders:        make(map[kernel.ID]*orderRow),
		courierOrders: make(map[kernel.ID][]kernel.ID),
		locks:         newLockTable(),
	}
}

// lockKey names one lockable entity.
type lockKey struct {
	table string
	name  string
	id    kernel.ID
}

func districtLock(name string) lockKey { return lockKey{table: "districts", name: name} }
func courierLock(id kernel.ID) lockKey { return lockKey{table: "couriers", id: id} }
func orderLock(id kernel.ID) lockKey   { return lockKey{table: "orders", id: id} }

// lockTable hands out one weighted(1) semaphore per entity. Semaphores are created on
// first use and kept for the life of the store, like the entities they guard.
type lockTable struct {
	mu    sync.Mutex
	locks map[lockKey]*semaphore.Weighted
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[lockKey]*semaphore.Weighted)}
}

func (t *lockTable) get(key lockKey) *semaphore.Weighted {
	t.mu.Lock()
	defer t.mu.Unlock()

	sem, ok := t.locks[key]
	if !ok {
		sem = semaphore.NewWeighted(1)
		t.locks[key] = sem
	}
	return sem
}
