package services

import (
	"cmp"
	"errors"
	"slices"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/district"
	"dispatch/internal/core/domain/model/kernel"
)

var (
	// ErrCourierIsBusy is returned when the candidate already carries or reserved an order.
	// Under concurrency this means another matcher won the courier; the caller moves on.
	ErrCourierIsBusy = errors.New("courier is busy")

	// ErrCourierOutOfDistrict is returned when the candidate does not serve the district.
	ErrCourierOutOfDistrict = errors.New("courier does not serve the district")
)

// OrderDispatcher is a domain service that reserves a courier for a new order in a district.
//
// Key responsibilities:
//   - Ranking candidates: free couriers first-come by ascending id
//   - Checking that a candidate serves the district and is free
//   - Writing the placeholder claim that the order creation later binds
//
// Business rules:
//   - Only couriers that serve the district may be dispatched there
//   - A busy courier is never claimed
//   - Ties are broken by the lowest courier id
//
// Example usage:
//
//	dispatcher := services.NewOrderDispatcher()
//	for _, c := range dispatcher.Rank(candidates) {
//	    err := dispatcher.Dispatch(d, c, token)
//	    if errors.Is(err, services.ErrCourierIsBusy) {
//	        continue
//	    }
//	    ...
//	}
type OrderDispatcher struct{}

// NewOrderDispatcher creates a new OrderDispatcher instance.
func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// Rank returns the free couriers from candidates ordered by ascending id.
// The input slice is not modified.
func (o OrderDispatcher) Rank(candidates []*courier.Courier) []*courier.Courier {
	ranked := make([]*courier.Courier, 0, len(candidates))
	for _, c := range candidates {
		if c != nil && c.IsFree() {
			ranked = append(ranked, c)
		}
	}
	slices.SortFunc(ranked, func(a, b *courier.Courier) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return ranked
}

// Dispatch claims c for an order in d using token as the placeholder.
//
// Parameters:
//   - d: the district the order is placed in
//   - c: the candidate, locked by the caller for the rest of the unit of work
//   - token: a fresh claim token
//
// Returns:
//   - ErrCourierOutOfDistrict if c does not serve d
//   - ErrCourierIsBusy if c already holds a claim
//   - validation errors for unconstructed arguments
func (o OrderDispatcher) Dispatch(d *district.District, c *courier.Courier, token kernel.ClaimToken) error {
	if err := errors.Join(d.Validate(), c.Validate(), token.Validate()); err != nil {
		return err
	}

	if !c.Serves(d.Name()) {
		return ErrCourierOutOfDistrict
	}

	if !c.IsFree() {
		return ErrCourierIsBusy
	}

	if err := c.Claim(token); err != nil {
		if errors.Is(err, courier.ErrClaimIsOccupied) {
			return ErrCourierIsBusy
		}
		return err
	}

	return nil
}
