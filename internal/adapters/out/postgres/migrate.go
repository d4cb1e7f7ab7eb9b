package postgres

import (
	"fmt"

	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/districtrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to PostgreSQL with GORM's own logging silenced; the application logs
// failures where it handles them.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the districts, courier_districts, couriers and orders tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&districtrepo.DistrictDTO{},
		&districtrepo.MembershipDTO{},
		&courierrepo.CourierDTO{},
		&orderrepo.OrderDTO{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
