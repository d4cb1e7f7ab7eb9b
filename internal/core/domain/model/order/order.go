package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrAlreadyCompleted is returned when completing an order twice.
	ErrAlreadyCompleted = errors.New("order is already completed")

	// ErrNameIsRequired is returned when the order name is blank.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")

	// ErrDistrictIsRequired is returned when the district name is blank.
	ErrDistrictIsRequired = errs.NewValueIsRequiredError("district")
)

// Order is the aggregate root for one delivery request. It is created already bound to
// the courier that was dispatched for it and moves once from InProgress to Completed.
//
// Order follows these invariants:
//   - id and courierID are positive; the courier never changes after creation
//   - name and district are non-empty
//   - completedAt is set exactly when status is Completed and is never before startedAt
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	// id is the unique identifier for the order
	id kernel.ID

	// name is the client-supplied label of the order
	name string

	// district is the name of the district the order was dispatched in
	district string

	// courierID is the courier carrying the order
	courierID kernel.ID

	// status represents the current state in the order lifecycle
	status Status

	// startedAt is the dispatch time
	startedAt time.Time

	// completedAt is nil until the order is completed
	completedAt *time.Time

	// isConstructed ensures the order was created via NewOrder
	isConstructed bool
}

// NewOrder creates an InProgress order bound to courierID.
//
// Parameters:
//   - id: identifier allocated by the order repository
//   - name: order label (must be non-empty)
//   - district: district the courier was matched in (must be non-empty)
//   - courierID: the dispatched courier
//   - startedAt: dispatch time
//
// Returns:
//   - *Order: the created order if all validations pass
//   - error: aggregated validation errors
//
// Example:
//
//	o, err := order.NewOrder(orderID, "pizza", "center", courierID, time.Now().UTC())
//	if err != nil {
//	    return err
//	}
func NewOrder(id kernel.ID, name, district string, courierID kernel.ID, startedAt time.Time) (*Order, error) {
	order := &Order{
		status:        InProgress,
		startedAt:     startedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setName(name),
		order.setDistrict(district),
		order.setCourierID(courierID),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistent storage.
//
// Business Rules:
//   - status must be InProgress or Completed
//   - a Completed order must carry completedAt, an InProgress one must not
func RestoreOrder(
	id kernel.ID,
	name, district string,
	courierID kernel.ID,
	status Status,
	startedAt time.Time,
	completedAt *time.Time,
) (*Order, error) {
	order := &Order{
		startedAt:     startedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setName(name),
		order.setDistrict(district),
		order.setCourierID(courierID),
		order.setStatus(status, completedAt),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.ID {
	return o.id
}

// Name returns the order label.
func (o *Order) Name() string {
	return o.name
}

// District returns the name of the district the order was dispatched in.
func (o *Order) District() string {
	return o.district
}

// CourierID returns the courier bound at creation.
func (o *Order) CourierID() kernel.ID {
	return o.courierID
}

// Status returns the lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// IsCompleted is a shortcut for Status() == Completed.
func (o *Order) IsCompleted() bool {
	return o.status == Completed
}

// StartedAt returns the dispatch time.
func (o *Order) StartedAt() time.Time {
	return o.startedAt
}

// CompletedAt returns the completion time, nil while in progress.
func (o *Order) CompletedAt() *time.Time {
	if o.completedAt == nil {
		return nil
	}
	at := *o.completedAt
	return &at
}

// Duration is completedAt - startedAt for completed orders.
func (o *Order) Duration() (time.Duration, bool) {
	if o.completedAt == nil {
		return 0, false
	}
	return o.completedAt.Sub(o.startedAt), true
}

// Complete moves the order to Completed at the given time.
//
// A completion time earlier than startedAt is clamped to startedAt.
//
// Returns:
//   - ErrAlreadyCompleted if the order is already completed; completedAt is left untouched
//
// Example:
//
//	if err := o.Complete(time.Now().UTC()); errors.Is(err, order.ErrAlreadyCompleted) {
//	    return err
//	}
func (o *Order) Complete(at time.Time) error {
	status, err := o.status.Complete()
	if err != nil {
		if errors.Is(err, ErrAlreadyCompleted) {
			return fmt.Errorf("order %s: %w", o.id, err)
		}
		return err
	}

	if at.Before(o.startedAt) {
		at = o.startedAt
	}

	o.status = status
	o.completedAt = &at
	return nil
}

func (o *Order) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	o.id = id
	return nil
}

func (o *Order) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}

	o.name = name
	return nil
}

func (o *Order) setDistrict(district string) error {
	if strings.TrimSpace(district) == "" {
		return ErrDistrictIsRequired
	}

	o.district = district
	return nil
}

func (o *Order) setCourierID(courierID kernel.ID) error {
	if err := courierID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("courierID", err)
	}

	o.courierID = courierID
	return nil
}

// setStatus restores the status together with the completion time it implies.
func (o *Order) setStatus(status Status, completedAt *time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}

	switch {
	case status == Completed && completedAt == nil:
		return errs.NewValueIsRequiredErrorWithCause("completedAt", fmt.Errorf("%s order has no completion time", status))
	case status == InProgress && completedAt != nil:
		return errs.NewValueIsInvalidErrorWithCause("completedAt", fmt.Errorf("%s order has a completion time", status))
	}

	o.status = status
	if completedAt != nil {
		at := *completedAt
		o.completedAt = &at
	}
	return nil
}
