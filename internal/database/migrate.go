package database

import (
	"gorm.io/gorm"

	"github.com/kebabkartan/backend/internal/models"
)

// Migrate brings the schema up to date. GORM auto-migration covers both the
// postgres deployment and the sqlite databases the package tests run on.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Place{},
		&models.Vote{},
		&models.Review{},
		&models.ReviewLike{},
	)
}
