// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models shaped for specific use cases.
package queries

import (
	"dispatch/internal/core/ports"
)

// Query handlers read through a unit of work that is never begun, so every read
// observes committed state only and takes no locks.
type (
	// Reader exposes the repositories queries read from.
	Reader interface {
		DistrictRepository() ports.DistrictRepository
		CourierRepository() ports.CourierRepository
		OrderRepository() ports.OrderRepository
	}

	// ReaderFactory creates a Reader per query.
	ReaderFactory interface {
		Create() Reader
	}
)
