package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kebabkartan/backend/internal/models"
	"github.com/kebabkartan/backend/internal/types"
)

// RatingService owns vote submission and the denormalized rating aggregates
// on the place record. Aggregates are always recomputed from the full vote
// set, inside the same transaction as the vote write, so they stay derivable
// from the votes table at every commit point.
type RatingService struct {
	db *gorm.DB
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{db: db}
}

func validRating(r int) bool {
	return r >= 1 && r <= 5
}

// SubmitVote records or overwrites the user's vote for a place and refreshes
// the place aggregates. Submitting an identical vote twice is a no-op for
// the aggregates and is reported via Changed=false.
func (s *RatingService) SubmitVote(ctx context.Context, userID, placeID uuid.UUID, general int, sauce *int) (*types.SubmitRatingResponse, error) {
	if !validRating(general) {
		return nil, ErrInvalidRating
	}
	if sauce != nil && !validRating(*sauce) {
		return nil, ErrInvalidRating
	}

	resp := &types.SubmitRatingResponse{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var place models.Place
		if err := tx.First(&place, "id = ?", placeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var existing models.Vote
		err := tx.Where("place_id = ? AND user_id = ?", placeID, userID).First(&existing).Error
		switch {
		case err == nil:
			if existing.GeneralRating == general && intPtrEqual(existing.SauceRating, sauce) {
				// Identical resubmission: skip the write entirely.
				resp.Changed = false
				resp.AverageRating = place.AverageRating
				resp.VoteCount = place.VoteCount
				return nil
			}
			existing.GeneralRating = general
			existing.SauceRating = sauce
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := models.Vote{
				ID:            uuid.New(),
				PlaceID:       placeID,
				UserID:        userID,
				GeneralRating: general,
				SauceRating:   sauce,
			}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
		default:
			return err
		}

		avg, count, err := recomputeAggregates(tx, placeID)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.Place{}).Where("id = ?", placeID).
			Updates(map[string]interface{}{
				"average_rating": avg,
				"vote_count":     count,
			}).Error; err != nil {
			return err
		}

		resp.Changed = true
		resp.AverageRating = avg
		resp.VoteCount = count
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// recomputeAggregates derives the average rating and vote count from the
// current vote set. Never incremental arithmetic on the old aggregate.
func recomputeAggregates(tx *gorm.DB, placeID uuid.UUID) (float64, int, error) {
	var agg struct {
		Avg   float64
		Count int64
	}
	err := tx.Model(&models.Vote{}).
		Select("COALESCE(AVG(CAST(general_rating AS REAL)), 0) AS avg, COUNT(*) AS count").
		Where("place_id = ?", placeID).
		Scan(&agg).Error
	if err != nil {
		return 0, 0, err
	}
	return agg.Avg, int(agg.Count), nil
}

// GetUserVote fetches one user's vote for a place.
func (s *RatingService) GetUserVote(ctx context.Context, userID, placeID uuid.UUID) (*models.Vote, error) {
	var vote models.Vote
	err := s.db.WithContext(ctx).Where("place_id = ? AND user_id = ?", placeID, userID).First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &vote, nil
}

// ListUserVotes fetches all of a user's votes, newest first.
func (s *RatingService) ListUserVotes(ctx context.Context, userID uuid.UUID) ([]models.Vote, error) {
	var votes []models.Vote
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("updated_at desc").Find(&votes).Error
	if err != nil {
		return nil, err
	}
	return votes, nil
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
