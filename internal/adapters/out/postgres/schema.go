package postgres

import (
	"parceltrack/internal/adapters/out/postgres/notificationrepo"
	"parceltrack/internal/adapters/out/postgres/parcelrepo"
	"parceltrack/internal/adapters/out/postgres/revenuerepo"

	"gorm.io/gorm"
)

// Models lists every table the record store owns.
func Models() []any {
	return []any{
		&parcelrepo.ParcelDTO{},
		&parcelrepo.StatusUpdateDTO{},
		&revenuerepo.RevenueDTO{},
		&notificationrepo.NotificationDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
