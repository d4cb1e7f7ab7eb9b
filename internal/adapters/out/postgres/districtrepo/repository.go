package districtrepo

import (
	"context"
	"errors"
	"slices"
	"strings"

	"dispatch/internal/core/domain/model/district"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDistrictRepository implements ports.DistrictRepository using GORM.
type GormDistrictRepository struct {
	db *gorm.DB
}

// NewGormDistrictRepository creates a repository bound to db, which may be a transaction.
func NewGormDistrictRepository(db *gorm.DB) *GormDistrictRepository {
	return &GormDistrictRepository{db: db}
}

// ResolveOrCreate inserts missing districts with ON CONFLICT DO NOTHING and returns all
// of them in first-seen order. Inserts run in name order so two transactions resolving
// overlapping sets never wait on each other in a cycle.
func (r *GormDistrictRepository) ResolveOrCreate(ctx context.Context, names []string) ([]*district.District, error) {
	unique := make([]string, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, district.ErrNameIsRequired
		}
		if !slices.Contains(unique, name) {
			unique = append(unique, name)
		}
	}

	sorted := slices.Clone(unique)
	slices.Sort(sorted)

	db := r.db.WithContext(ctx)
	for _, name := range sorted {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&DistrictDTO{Name: name}).Error; err != nil {
			return nil, err
		}
	}

	districts := make([]*district.District, 0, len(unique))
	for _, name := range unique {
		d, err := r.load(ctx, r.db, name)
		if err != nil {
			return nil, err
		}
		districts = append(districts, d)
	}

	return districts, nil
}

// Get retrieves a district with its members.
func (r *GormDistrictRepository) Get(ctx context.Context, name string) (*district.District, error) {
	return r.load(ctx, r.db, name)
}

// GetForUpdate reads the district with SELECT ... FOR UPDATE. The row lock serializes
// dispatchers of one district until the surrounding transaction ends.
func (r *GormDistrictRepository) GetForUpdate(ctx context.Context, name string) (*district.District, error) {
	return r.load(ctx, r.db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), name)
}

// AddMember records that the courier serves the district. Repeating it is a no-op.
func (r *GormDistrictRepository) AddMember(ctx context.Context, name string, courierID kernel.ID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&DistrictDTO{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("district", name)
	}

	membership := MembershipDTO{DistrictName: name, CourierID: courierID.Int64()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&membership).Error
}

func (r *GormDistrictRepository) load(ctx context.Context, db *gorm.DB, name string) (*district.District, error) {
	var dto DistrictDTO
	if err := db.WithContext(ctx).First(&dto, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("district", name)
		}
		return nil, err
	}

	var members []int64
	if err := r.db.WithContext(ctx).
		Model(&MembershipDTO{}).
		Where("district_name = ?", name).
		Order("courier_id").
		Pluck("courier_id", &members).Error; err != nil {
		return nil, err
	}

	return toDomain(dto, members)
}
