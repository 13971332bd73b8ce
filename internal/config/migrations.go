package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"rollout_tracker/internal/models"
)

// Migrations applies the versioned schema migrations. Idempotent: already
// applied steps are skipped. Run from cmd/migrate at deployment time.
func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250114_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.Supplier{}, &models.Employee{},
					&models.Store{}, &models.Kit{}, &models.Route{}, &models.RouteItem{})
			},
		},
		{
			ID: "20250121_create_installation_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Installation{}, &models.OriginalPhoto{}, &models.FinalPhoto{})
			},
		},
		{
			ID: "20250203_create_tickets",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Ticket{})
			},
		},
		{
			ID: "20250217_route_items_index",
			Migrate: func(tx *gorm.DB) error {
				return tx.Exec("CREATE INDEX IF NOT EXISTS idx_route_items_route_store ON route_items (route_id, store_code)").Error
			},
		},
	})
	return m.Migrate()
}

// MigrateForTests auto-migrates every model into the given handle. Used by
// the service test suites against sqlite; production schema comes from
// Migrations above.
func MigrateForTests(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{}, &models.Supplier{}, &models.Employee{},
		&models.Store{}, &models.Kit{}, &models.Route{}, &models.RouteItem{},
		&models.Installation{}, &models.OriginalPhoto{}, &models.FinalPhoto{},
		&models.Ticket{},
	)
}
