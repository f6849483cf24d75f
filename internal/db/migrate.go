package db

import (
	"fmt"

	"gorm.io/gorm"

	"taskmanager/internal/model"
)

// models lists tables in dependency order.
var models = []interface{}{
	&model.User{},
	&model.Task{},
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Reset drops all tables, dependants first.
func Reset(db *gorm.DB) error {
	for i := len(models) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(models[i]); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return nil
}
