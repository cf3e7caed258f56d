package models

import (
	"time"

	"github.com/google/uuid"
)

// Vote is a single user's numeric rating for one place. The composite
// unique index keeps at most one live vote per (place, user) pair; a repeat
// submission overwrites the existing row.
//
// SauceRating is a pointer because rows written by the old single-rating
// flow carry only the general value. The dual-rating schema supersedes the
// legacy `rating` field; it survives on the wire as a read-only mirror of
// GeneralRating (see types.VoteResponse).
type Vote struct {
	ID            uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	PlaceID       uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_votes_place_user" json:"placeId"`
	UserID        uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_votes_place_user" json:"userId"`
	GeneralRating int       `gorm:"not null;check:general_rating >= 1 AND general_rating <= 5" json:"generalRating"`
	SauceRating   *int      `gorm:"check:sauce_rating IS NULL OR (sauce_rating >= 1 AND sauce_rating <= 5)" json:"sauceRating,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (Vote) TableName() string {
	return "votes"
}
