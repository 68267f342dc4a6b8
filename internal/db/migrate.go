package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/cashvault/cashcard/internal/models"
)

// Migrate applies schema migrations for all persisted models.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	return conn.AutoMigrate(
		&models.User{},
		&models.Card{},
	)
}
