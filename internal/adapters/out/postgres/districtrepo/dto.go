// Package districtrepo persists the district registry. A district is a name plus the
// set of couriers that registered for it; membership lives in its own table so both
// sides of the many-to-many relation can be queried by index.
package districtrepo

import (
	"dispatch/internal/core/domain/model/district"
	"dispatch/internal/core/domain/model/kernel"
)

// DistrictDTO is one row of the districts table.
type DistrictDTO struct {
	Name string `gorm:"type:varchar(255);primaryKey"`
}

// TableName overrides GORM's default "district_dtos".
func (DistrictDTO) TableName() string {
	return "districts"
}

// MembershipDTO links a courier to a district it serves.
type MembershipDTO struct {
	DistrictName string `gorm:"type:varchar(255);primaryKey"`
	CourierID    int64  `gorm:"primaryKey;autoIncrement:false;index"`
}

// TableName overrides GORM's default "membership_dtos".
func (MembershipDTO) TableName() string {
	return "courier_districts"
}

func toDomain(dto DistrictDTO, members []int64) (*district.District, error) {
	ids := make([]kernel.ID, 0, len(members))
	for _, raw := range members {
		id, err := kernel.NewID(raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return district.RestoreDistrict(dto.Name, ids)
}
