package lib

import (
	"fmt"

	"github.com/labstack/gommon/log"
	"github.com/theleywin/Backend-DevConnect/src/models"
	"gorm.io/gorm"
)

// AutoMigrate runs all database migrations
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Connection{},
	)
	if err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	log.Debug("database migration completed")
	return nil
}
