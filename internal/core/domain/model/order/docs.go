// Package order provides the Order aggregate and its two-state lifecycle.
//
// An order is created InProgress, already bound to the courier chosen by dispatch,
// and is completed exactly once. Completing twice fails with ErrAlreadyCompleted and
// leaves the first completion time in place.
package order
