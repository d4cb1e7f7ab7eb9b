package district_test

import (
	"testing"

	"dispatch/internal/core/domain/model/district"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDistrict(t *testing.T) {
	d, err := district.NewDistrict("center")

	require.NoError(t, err)
	require.NoError(t, d.Validate())
	assert.Equal(t, "center", d.Name())
	assert.Empty(t, d.Members())

	_, err = district.NewDistrict(" ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestDistrict_AddMember(t *testing.T) {
	d, err := district.NewDistrict("center")
	require.NoError(t, err)

	d.AddMember(kernel.MustID(3))
	d.AddMember(kernel.MustID(1))
	d.AddMember(kernel.MustID(3))
	d.AddMember(kernel.MustID(2))

	assert.Equal(t, []kernel.ID{1, 2, 3}, d.Members())
	assert.True(t, d.HasMember(kernel.MustID(2)))
	assert.False(t, d.HasMember(kernel.MustID(4)))
}

func TestDistrict_MembersReturnsCopy(t *testing.T) {
	d, err := district.RestoreDistrict("center", []kernel.ID{1, 2})
	require.NoError(t, err)

	members := d.Members()
	members[0] = 99

	assert.Equal(t, []kernel.ID{1, 2}, d.Members())
}

func TestRestoreDistrict(t *testing.T) {
	d, err := district.RestoreDistrict("north", []kernel.ID{5, 2, 5})
	require.NoError(t, err)
	assert.Equal(t, []kernel.ID{2, 5}, d.Members())

	_, err = district.RestoreDistrict("north", []kernel.ID{0})
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestDistrict_Validate(t *testing.T) {
	var nilDistrict *district.District
	require.ErrorIs(t, nilDistrict.Validate(), district.ErrDistrictIsNotConstructed)
	require.ErrorIs(t, (&district.District{}).Validate(), district.ErrDistrictIsNotConstructed)
}
