package service

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kebabkartan/backend/internal/database"
	"github.com/kebabkartan/backend/internal/models"
)

// setupTestDB creates an isolated in-memory sqlite database. A single open
// connection keeps every query on the same memory store.
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createTestPlace(t *testing.T, db *gorm.DB) models.Place {
	place := models.Place{
		ID:        uuid.New(),
		Name:      "Pizza Hub",
		Slug:      "restaurang/pizza-hub",
		City:      "Stockholm",
		Address:   "Kungsgatan 1",
		Latitude:  59.3293,
		Longitude: 18.0686,
		Tags:      models.TagList{"Pizza", "Kebab"},
	}
	if err := db.Create(&place).Error; err != nil {
		t.Fatalf("failed to create test place: %v", err)
	}
	return place
}

func createOtherPlace(t *testing.T, db *gorm.DB, name, slug string) models.Place {
	place := models.Place{
		ID:        uuid.New(),
		Name:      name,
		Slug:      slug,
		City:      "Malmö",
		Latitude:  55.605,
		Longitude: 13.0038,
		Tags:      models.TagList{"Falafel"},
	}
	if err := db.Create(&place).Error; err != nil {
		t.Fatalf("failed to create test place: %v", err)
	}
	return place
}

func createTestUser(t *testing.T, db *gorm.DB, name string) models.User {
	user := models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        name + "+" + uuid.NewString() + "@example.com",
		PasswordHash: "x",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func intPtr(v int) *int {
	return &v
}
