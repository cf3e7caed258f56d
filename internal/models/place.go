package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag vocabulary is fixed; the admin form only offers these values and the
// API rejects anything else.
var AllowedTags = []string{"Kebab", "Pizza", "Falafel", "Sallad", "Hamburgare"}

// TagList is a custom type for storing the category tag set as a JSON array
type TagList []string

// Value implements the driver.Valuer interface
func (t TagList) Value() (driver.Value, error) {
	if len(t) == 0 {
		return "[]", nil
	}
	return json.Marshal(t)
}

// Scan implements the sql.Scanner interface
func (t *TagList) Scan(value interface{}) error {
	if value == nil {
		*t = TagList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, t)
}

// Valid reports whether every tag is part of the fixed vocabulary.
func (t TagList) Valid() bool {
	for _, tag := range t {
		known := false
		for _, allowed := range AllowedTags {
			if tag == allowed {
				known = true
				break
			}
		}
		if !known {
			return false
		}
	}
	return true
}

// Place is one restaurant record. AverageRating, VoteCount and ReviewCount
// are denormalized caches over the votes/reviews tables; they are rewritten
// from the full vote/review set on every mutation, never incremented.
type Place struct {
	ID            uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Slug          string         `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	City          string         `gorm:"size:100" json:"city"`
	Address       string         `gorm:"size:255" json:"address"`
	Latitude      float64        `gorm:"not null" json:"latitude"`
	Longitude     float64        `gorm:"not null" json:"longitude"`
	OpeningHours  string         `gorm:"size:255" json:"openingHours"`
	PriceRange    string         `gorm:"size:50" json:"priceRange"`
	Tags          TagList        `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	ImageURL      string         `gorm:"size:255" json:"imageUrl"`
	AverageRating float64        `gorm:"not null;default:0" json:"averageRating"`
	VoteCount     int            `gorm:"not null;default:0" json:"voteCount"`
	ReviewCount   int            `gorm:"not null;default:0" json:"reviewCount"`
}

func (Place) TableName() string {
	return "kebab_places"
}
