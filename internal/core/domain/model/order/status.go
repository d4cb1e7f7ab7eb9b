package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	InProgress ──> Completed
//
// The numeric values are part of the external contract: clients and storage see
// 1 for an order in progress and 2 for a completed one.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// InProgress is the status of a freshly dispatched order carried by its courier.
	InProgress

	// Completed is terminal; no further transitions are allowed.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		InProgress: "InProgress",
		Completed:  "Completed",
	}
}

// Validate accepts InProgress and Completed only.
//
// Used when a status comes from an external source such as a database row.
func (s Status) Validate() error {
	if s != InProgress && s != Completed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer and is safe on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Complete transitions InProgress to Completed.
//
// Returns:
//   - (Completed, nil) on a valid transition
//   - (s, ErrAlreadyCompleted) when the order is already completed
//   - (s, error) for Unknown and out-of-range values
func (s Status) Complete() (Status, error) {
	switch s {
	case InProgress:
		return Completed, nil
	case Completed:
		return s, ErrAlreadyCompleted
	default:
		return s, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}
}
