package courier

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
)

var (
	// ErrClaimIsOccupied is returned when claiming a slot that already holds a token or an order.
	ErrClaimIsOccupied = errors.New("claim slot is occupied")

	// ErrClaimTokenMismatch is returned when binding an order with a token other than the
	// one that reserved the slot, or when the slot is already bound.
	ErrClaimTokenMismatch = errors.New("claim token does not match the reservation")
)

// Claim is the courier's single slot for an order. It moves through three states:
//
//	empty -> reserved(token) -> bound(token, orderID) -> empty
//
// The reserved state only exists inside the unit of work that creates the order,
// so other readers observe either empty or bound.
type Claim struct {
	token   kernel.ClaimToken
	orderID kernel.ID
}

// RestoreClaim rebuilds a slot from storage. Both arguments may be zero for an empty slot.
func RestoreClaim(token kernel.ClaimToken, orderID kernel.ID) (Claim, error) {
	if !orderID.IsZero() {
		if err := orderID.Validate(); err != nil {
			return Claim{}, err
		}
	}
	return Claim{token: token, orderID: orderID}, nil
}

// IsEmpty reports whether the slot holds neither a reservation nor an order.
func (c Claim) IsEmpty() bool {
	return c.token.IsZero() && c.orderID.IsZero()
}

// IsReserved is true between Reserve and Bind.
func (c Claim) IsReserved() bool {
	return !c.token.IsZero() && c.orderID.IsZero()
}

// Token returns the reservation token; zero when the slot was never reserved.
func (c Claim) Token() kernel.ClaimToken {
	return c.token
}

// OrderID returns the bound order and whether there is one.
func (c Claim) OrderID() (kernel.ID, bool) {
	return c.orderID, !c.orderID.IsZero()
}

func (c Claim) reserve(token kernel.ClaimToken) (Claim, error) {
	if err := token.Validate(); err != nil {
		return c, err
	}
	if !c.IsEmpty() {
		return c, ErrClaimIsOccupied
	}
	return Claim{token: token}, nil
}

func (c Claim) bind(token kernel.ClaimToken, orderID kernel.ID) (Claim, error) {
	if err := orderID.Validate(); err != nil {
		return c, err
	}
	if !c.IsReserved() || !c.token.IsEqual(token) {
		return c, ErrClaimTokenMismatch
	}
	return Claim{token: token, orderID: orderID}, nil
}

func (c Claim) release(orderID kernel.ID) (Claim, error) {
	held, ok := c.OrderID()
	if !ok {
		return c, fmt.Errorf("courier holds no order, asked to release %s", orderID)
	}
	if held != orderID {
		return c, fmt.Errorf("courier holds order %s, asked to release %s", held, orderID)
	}
	return Claim{}, nil
}
