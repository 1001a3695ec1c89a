package database

import (
	"github.com/HelplessSneeker/noessi-immo/internal/models"

	"gorm.io/gorm"
)

// InitSchema creates tables using GORM AutoMigrate
func InitSchema(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Property{},
		&models.Credit{},
		&models.Transaction{},
		&models.Document{},
	)
}
