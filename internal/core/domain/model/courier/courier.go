package courier

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrDistrictNameIsRequired is returned when one of the district names is blank.
	ErrDistrictNameIsRequired = errs.NewValueIsRequiredError("district name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier is the aggregate root for a delivery worker.
//
// Key responsibilities:
//   - Holding identity (ID, name) and the ordered set of districts the courier serves
//   - Owning the claim slot that makes at most one order active at a time
//   - Carrying the statistics recomputed after every completed order
//
// Business rules:
//   - ID must be positive and name non-empty
//   - At least one district; names are kept in first-seen order without duplicates
//   - A new courier is free and has no statistics
//
// Example usage:
//
//	c, err := courier.NewCourier(id, "Alice", []string{"north", "center"})
//	if err != nil {
//	    return err
//	}
//	token := kernel.NewClaimToken()
//	if err := c.Claim(token); err != nil {
//	    return err
//	}
//	err = c.BindOrder(token, orderID)
type Courier struct {
	// id uniquely identifies the courier
	id kernel.ID
	// name is the human-readable name of the courier
	name string
	// districts are the names of the districts this courier serves, in first-seen order
	districts []string
	// claim is the slot for the single active order
	claim Claim
	// statistics are recomputed from the order history on completion
	statistics Statistics
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier creates a free courier without statistics.
//
// Parameters:
//   - id: identifier allocated by the courier repository
//   - name: human-readable name (must be non-empty)
//   - districts: served district names (may be empty; blanks rejected; duplicates collapse)
//
// Returns:
//   - *Courier: the initialized courier
//   - error: aggregated validation errors
func NewCourier(id kernel.ID, name string, districts []string) (*Courier, error) {
	courier := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.setDistricts(districts),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// RestoreCourier reconstructs a Courier from persistent storage, including its claim
// slot and statistics.
func RestoreCourier(
	id kernel.ID,
	name string,
	districts []string,
	claim Claim,
	statistics Statistics,
) (*Courier, error) {
	courier := &Courier{
		guard: guard.NewConstructorGuard(),
		claim: claim,
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.setDistricts(districts),
		courier.setStatistics(statistics),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// IsEqual compares two couriers by identity.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id == other.id
}

// Validate returns ErrCourierIsNotConstructed for nil or zero-value couriers.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ID returns the courier's identifier.
func (c *Courier) ID() kernel.ID {
	return c.id
}

// Name returns the courier's name.
func (c *Courier) Name() string {
	return c.name
}

// Districts returns a copy of the served district names in first-seen order.
func (c *Courier) Districts() []string {
	out := make([]string, len(c.districts))
	copy(out, c.districts)
	return out
}

// Serves reports whether the courier works in the named district.
func (c *Courier) Serves(district string) bool {
	for _, d := range c.districts {
		if d == district {
			return true
		}
	}
	return false
}

// ClaimSlot returns the current state of the claim slot.
func (c *Courier) ClaimSlot() Claim {
	return c.claim
}

// IsFree is true when the courier neither holds an order nor is reserved by a dispatch.
func (c *Courier) IsFree() bool {
	return c.claim.IsEmpty()
}

// ActiveOrderID returns the id of the order the courier is carrying, if any.
func (c *Courier) ActiveOrderID() (kernel.ID, bool) {
	return c.claim.OrderID()
}

// Statistics returns the current aggregates.
func (c *Courier) Statistics() Statistics {
	return c.statistics
}

// AvgOrderCompleteTime is the mean duration of completed orders, nil when there are none.
func (c *Courier) AvgOrderCompleteTime() *time.Duration {
	return c.statistics.AvgOrderCompleteTime
}

// AvgDayOrders is the number of completed orders per distinct working day.
func (c *Courier) AvgDayOrders() int {
	return c.statistics.AvgDayOrders
}

// Claim reserves the free courier with a placeholder token.
//
// Returns ErrClaimIsOccupied if the courier already holds a reservation or an order.
//
// Example:
//
//	token := kernel.NewClaimToken()
//	if err := c.Claim(token); errors.Is(err, courier.ErrClaimIsOccupied) {
//	    // try the next candidate
//	}
func (c *Courier) Claim(token kernel.ClaimToken) error {
	claim, err := c.claim.reserve(token)
	if err != nil {
		return err
	}
	c.claim = claim
	return nil
}

// BindOrder replaces the placeholder reserved by token with the id of the created order.
//
// Returns ErrClaimTokenMismatch when the slot was not reserved with token.
func (c *Courier) BindOrder(token kernel.ClaimToken, orderID kernel.ID) error {
	claim, err := c.claim.bind(token, orderID)
	if err != nil {
		return err
	}
	c.claim = claim
	return nil
}

// Release empties the claim slot when the courier holds orderID.
//
// Returns an errs.ErrInvariantViolation error when the courier holds a different
// order or none at all; in a consistent store this never happens.
func (c *Courier) Release(orderID kernel.ID) error {
	claim, err := c.claim.release(orderID)
	if err != nil {
		return errs.NewInvariantViolationError("courier", c.id, err)
	}
	c.claim = claim
	return nil
}

// UpdateStatistics overwrites both aggregates.
func (c *Courier) UpdateStatistics(statistics Statistics) error {
	return c.setStatistics(statistics)
}

func (c *Courier) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *Courier) setDistricts(districts []string) error {
	seen := make(map[string]struct{}, len(districts))
	unique := make([]string, 0, len(districts))
	for _, d := range districts {
		if strings.TrimSpace(d) == "" {
			return ErrDistrictNameIsRequired
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		unique = append(unique, d)
	}

	c.districts = unique
	return nil
}

func (c *Courier) setStatistics(statistics Statistics) error {
	if statistics.AvgDayOrders < 0 {
		return errs.NewValueIsInvalidErrorWithCause("avgDayOrders",
			fmt.Errorf("%d is negative", statistics.AvgDayOrders))
	}
	if statistics.AvgOrderCompleteTime != nil && *statistics.AvgOrderCompleteTime < 0 {
		return errs.NewValueIsInvalidErrorWithCause("avgOrderCompleteTime",
			fmt.Errorf("%s is negative", *statistics.AvgOrderCompleteTime))
	}

	if statistics.AvgOrderCompleteTime != nil {
		d := *statistics.AvgOrderCompleteTime
		statistics.AvgOrderCompleteTime = &d
	}
	c.statistics = statistics
	return nil
}
