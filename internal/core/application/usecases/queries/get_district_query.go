package queries

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetDistrictQueryIsNotConstructed = errors.New(
		"GetDistrictQuery must be created via NewGetDistrictQuery constructor",
	)
	ErrDistrictNameIsRequired = errors.New("district name is required")
)

// GetDistrictQuery looks up a district with its members and currently free couriers.
type GetDistrictQuery struct {
	name  string
	guard guard.ConstructorGuard
}

// NewGetDistrictQuery rejects a blank name.
func NewGetDistrictQuery(name string) (GetDistrictQuery, error) {
	if strings.TrimSpace(name) == "" {
		return GetDistrictQuery{}, ErrDistrictNameIsRequired
	}
	return GetDistrictQuery{name: name, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDistrictQuery) Validate() error {
	return q.guard.Validate(ErrGetDistrictQueryIsNotConstructed)
}

// Name returns the requested district.
func (q GetDistrictQuery) Name() string {
	return q.name
}

// GetDistrictQueryResponse lists courier ids in ascending order.
type GetDistrictQueryResponse struct {
	Name         string
	Couriers     []kernel.ID
	FreeCouriers []kernel.ID
}
