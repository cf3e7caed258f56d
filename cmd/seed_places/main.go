package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kebabkartan/backend/config"
	"github.com/kebabkartan/backend/internal/database"
	"github.com/kebabkartan/backend/internal/models"
	"github.com/kebabkartan/backend/internal/service"
)

// seedPlace is one entry in the seed file.
type seedPlace struct {
	Name         string   `json:"name"`
	Slug         string   `json:"slug"`
	City         string   `json:"city"`
	Address      string   `json:"address"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	OpeningHours string   `json:"openingHours"`
	PriceRange   string   `json:"priceRange"`
	Tags         []string `json:"tags"`
}

func main() {
	file := flag.String("file", "seed/places.json", "JSON file with places to seed")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read seed file: %v", err)
	}

	var seeds []seedPlace
	if err := json.Unmarshal(data, &seeds); err != nil {
		log.Fatalf("Failed to parse seed file: %v", err)
	}

	created, skipped := 0, 0
	for _, s := range seeds {
		if !service.ValidateSlug(s.Slug) {
			log.Printf("Skipping %q: bad slug %q", s.Name, s.Slug)
			skipped++
			continue
		}
		tags := models.TagList(s.Tags)
		if !tags.Valid() {
			log.Printf("Skipping %q: unknown tag in %v", s.Name, s.Tags)
			skipped++
			continue
		}

		var existing models.Place
		if err := db.First(&existing, "slug = ?", s.Slug).Error; err == nil {
			skipped++
			continue
		} else if err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to check slug %q: %v", s.Slug, err)
		}

		place := models.Place{
			ID:           uuid.New(),
			Name:         s.Name,
			Slug:         s.Slug,
			City:         s.City,
			Address:      s.Address,
			Latitude:     s.Latitude,
			Longitude:    s.Longitude,
			OpeningHours: s.OpeningHours,
			PriceRange:   s.PriceRange,
			Tags:         tags,
		}
		if err := db.Create(&place).Error; err != nil {
			log.Fatalf("Failed to create %q: %v", s.Name, err)
		}
		created++
	}

	log.Printf("Seeded %d places (%d skipped)", created, skipped)
}
