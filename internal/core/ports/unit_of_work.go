package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and hands out repositories bound to it.
//
// Without Begin, repositories read committed state and writes apply immediately.
// After Begin, writes stay invisible to other units of work until Commit, and locks
// taken by ForUpdate reads are held until Commit or Rollback.
type UnitOfWork interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit publishes all staged writes atomically and releases the locks.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback discards staged writes and releases the locks.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// DistrictRepository returns a DistrictRepository bound to the current transaction.
	DistrictRepository() DistrictRepository

	// CourierRepository returns a CourierRepository bound to the current transaction.
	CourierRepository() CourierRepository

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository
}
