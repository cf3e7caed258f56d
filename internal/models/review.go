package models

import (
	"time"

	"github.com/google/uuid"
)

// Free-text length caps enforced on create and edit.
const (
	MaxGeneralTextLen = 500
	MaxSauceTextLen   = 300
)

// Review is a user's free-text commentary plus ratings for one place.
// Independent of Vote: posting a review does not touch the vote set.
//
// Likes is a denormalized count over review_likes and is rewritten from
// COUNT(*) inside the same transaction as every membership change, so it
// cannot diverge from the set.
type Review struct {
	ID            uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	PlaceID       uuid.UUID `gorm:"type:varchar(36);not null;index" json:"restaurantId"`
	UserID        uuid.UUID `gorm:"type:varchar(36);not null;index" json:"userId"`
	DisplayName   string    `gorm:"size:100;not null" json:"displayName"`
	GeneralRating int       `gorm:"not null;check:general_rating >= 1 AND general_rating <= 5" json:"generalRating"`
	SauceRating   int       `gorm:"not null;check:sauce_rating >= 1 AND sauce_rating <= 5" json:"sauceRating"`
	GeneralText   string    `gorm:"size:500" json:"generalText"`
	SauceText     string    `gorm:"size:300" json:"sauceText"`
	Likes         int       `gorm:"not null;default:0" json:"likes"`
	Edited        bool      `gorm:"not null;default:false" json:"edited"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (Review) TableName() string {
	return "reviews"
}

// ReviewLike is one user's like on one review; the composite unique index
// enforces at-most-once membership.
type ReviewLike struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	ReviewID  uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_review_likes_review_user" json:"reviewId"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_review_likes_review_user" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ReviewLike) TableName() string {
	return "review_likes"
}
