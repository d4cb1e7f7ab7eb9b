// Package pgtest starts a disposable PostgreSQL container for integration suites.
package pgtest

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// Database is a migrated schema inside a running container.
type Database struct {
	DB        *gorm.DB
	container *tcpostgres.PostgresContainer
}

// Start runs postgres:15-alpine and applies the schema. The test is skipped when no
// container provider is available.
func Start(t *testing.T) *Database {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := postgres.Open(dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("%v", err)
	}

	if err := postgres.Migrate(db); err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("%v", err)
	}

	return &Database{DB: db, container: container}
}

// Truncate empties every table and restarts the id sequences.
func (d *Database) Truncate(t *testing.T) {
	t.Helper()
	err := d.DB.Exec("TRUNCATE TABLE orders, couriers, courier_districts, districts RESTART IDENTITY").Error
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}

// Stop terminates the container.
func (d *Database) Stop() error {
	if d == nil || d.container == nil {
		return nil
	}
	return d.container.Terminate(context.Background())
}
