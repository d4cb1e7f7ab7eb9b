package district

import (
	"errors"
	"slices"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrNameIsRequired is returned for a blank district name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")

	// ErrDistrictIsNotConstructed is returned when using a zero-value District.
	ErrDistrictIsNotConstructed = errors.New("District must be created via NewDistrict constructor")
)

// District is a named service area. It is created the first time a courier names it
// and is never removed. Membership only grows.
//
// Example usage:
//
//	d, err := district.NewDistrict("center")
//	if err != nil {
//	    return err
//	}
//	d.AddMember(courierID)
type District struct {
	name          string
	members       []kernel.ID
	isConstructed bool
}

// NewDistrict creates an empty district.
func NewDistrict(name string) (*District, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameIsRequired
	}
	return &District{name: name, isConstructed: true}, nil
}

// RestoreDistrict rebuilds a district and its members from storage.
func RestoreDistrict(name string, members []kernel.ID) (*District, error) {
	d, err := NewDistrict(name)
	if err != nil {
		return nil, err
	}
	for _, id := range members {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		d.AddMember(id)
	}
	return d, nil
}

// Validate returns ErrDistrictIsNotConstructed for nil or zero-value districts.
func (d *District) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDistrictIsNotConstructed
	}
	return nil
}

// Name is the district's identity.
func (d *District) Name() string {
	return d.name
}

// Members returns the ids of couriers serving the district in ascending order.
func (d *District) Members() []kernel.ID {
	return slices.Clone(d.members)
}

// HasMember reports whether the courier serves this district.
func (d *District) HasMember(id kernel.ID) bool {
	_, found := slices.BinarySearch(d.members, id)
	return found
}

// AddMember records the courier as serving the district. Adding an existing member is a no-op.
func (d *District) AddMember(id kernel.ID) {
	i, found := slices.BinarySearch(d.members, id)
	if found {
		return
	}
	d.members = slices.Insert(d.members, i, id)
}
