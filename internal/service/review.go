package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kebabkartan/backend/internal/models"
	"github.com/kebabkartan/backend/internal/types"
)

// ReviewService owns the review lifecycle and the like toggle. The place's
// review counter and each review's like counter are recomputed from their
// backing rows inside the mutating transaction, so neither can drift or
// double-decrement under concurrent requests.
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

func validateReviewText(general, sauce string) error {
	if len(general) > models.MaxGeneralTextLen || len(sauce) > models.MaxSauceTextLen {
		return ErrTextTooLong
	}
	return nil
}

// Create persists a new review and refreshes the place's review counter in
// the same transaction.
func (s *ReviewService) Create(ctx context.Context, userID uuid.UUID, req *types.CreateReviewRequest) (*types.ReviewResponse, error) {
	if !validRating(req.GeneralRating) || !validRating(req.SauceRating) {
		return nil, ErrInvalidRating
	}
	if err := validateReviewText(req.GeneralText, req.SauceText); err != nil {
		return nil, err
	}

	review := models.Review{
		ID:            uuid.New(),
		PlaceID:       req.RestaurantID,
		UserID:        userID,
		DisplayName:   req.DisplayName,
		GeneralRating: req.GeneralRating,
		SauceRating:   req.SauceRating,
		GeneralText:   req.GeneralText,
		SauceText:     req.SauceText,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var place models.Place
		if err := tx.First(&place, "id = ?", req.RestaurantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return syncReviewCount(tx, req.RestaurantID)
	})
	if err != nil {
		return nil, err
	}

	return &types.ReviewResponse{Review: review, LikedBy: []uuid.UUID{}}, nil
}

// Update edits the caller's own review; anyone else gets ErrNotOwner.
func (s *ReviewService) Update(ctx context.Context, userID uuid.UUID, req *types.UpdateReviewRequest) (*types.ReviewResponse, error) {
	var review models.Review
	if err := s.db.WithContext(ctx).First(&review, "id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if review.UserID != userID {
		return nil, ErrNotOwner
	}

	if req.GeneralRating != nil {
		if !validRating(*req.GeneralRating) {
			return nil, ErrInvalidRating
		}
		review.GeneralRating = *req.GeneralRating
	}
	if req.SauceRating != nil {
		if !validRating(*req.SauceRating) {
			return nil, ErrInvalidRating
		}
		review.SauceRating = *req.SauceRating
	}
	if req.GeneralText != nil {
		review.GeneralText = *req.GeneralText
	}
	if req.SauceText != nil {
		review.SauceText = *req.SauceText
	}
	if err := validateReviewText(review.GeneralText, review.SauceText); err != nil {
		return nil, err
	}
	review.Edited = true

	if err := s.db.WithContext(ctx).Save(&review).Error; err != nil {
		return nil, err
	}

	likedBy, err := s.likedBy(ctx, review.ID)
	if err != nil {
		return nil, err
	}
	return &types.ReviewResponse{Review: review, LikedBy: likedBy}, nil
}

// Delete removes the caller's own review along with its likes and refreshes
// the place counter. The row-count check makes a concurrent double delete a
// clean 404 instead of a second decrement.
func (s *ReviewService) Delete(ctx context.Context, userID, reviewID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, "id = ?", reviewID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if review.UserID != userID {
			return ErrNotOwner
		}

		result := tx.Delete(&models.Review{}, "id = ?", reviewID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Delete(&models.ReviewLike{}, "review_id = ?", reviewID).Error; err != nil {
			return err
		}
		return syncReviewCount(tx, review.PlaceID)
	})
}

// ToggleLike flips the caller's like on a review. The counter is set to the
// membership count inside the transaction and can never diverge from it.
func (s *ReviewService) ToggleLike(ctx context.Context, userID, reviewID uuid.UUID) (*types.LikeResponse, error) {
	resp := &types.LikeResponse{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, "id = ?", reviewID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var like models.ReviewLike
		err := tx.Where("review_id = ? AND user_id = ?", reviewID, userID).First(&like).Error
		switch {
		case err == nil:
			if err := tx.Delete(&models.ReviewLike{}, "id = ?", like.ID).Error; err != nil {
				return err
			}
			resp.Liked = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			like = models.ReviewLike{
				ID:       uuid.New(),
				ReviewID: reviewID,
				UserID:   userID,
			}
			if err := tx.Create(&like).Error; err != nil {
				return err
			}
			resp.Liked = true
		default:
			return err
		}

		var count int64
		if err := tx.Model(&models.ReviewLike{}).Where("review_id = ?", reviewID).Count(&count).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Review{}).Where("id = ?", reviewID).Update("likes", count).Error; err != nil {
			return err
		}
		resp.Likes = int(count)

		var likers []models.ReviewLike
		if err := tx.Where("review_id = ?", reviewID).Order("created_at asc").Find(&likers).Error; err != nil {
			return err
		}
		resp.LikedBy = make([]uuid.UUID, 0, len(likers))
		for _, l := range likers {
			resp.LikedBy = append(resp.LikedBy, l.UserID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ListByPlace returns a place's reviews, newest first, with their liking
// user sets attached.
func (s *ReviewService) ListByPlace(ctx context.Context, placeID uuid.UUID) ([]types.ReviewResponse, error) {
	var reviews []models.Review
	err := s.db.WithContext(ctx).Where("place_id = ?", placeID).Order("created_at desc").Find(&reviews).Error
	if err != nil {
		return nil, err
	}

	responses := make([]types.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		likedBy, err := s.likedBy(ctx, review.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, types.ReviewResponse{Review: review, LikedBy: likedBy})
	}
	return responses, nil
}

func (s *ReviewService) likedBy(ctx context.Context, reviewID uuid.UUID) ([]uuid.UUID, error) {
	var likers []models.ReviewLike
	err := s.db.WithContext(ctx).Where("review_id = ?", reviewID).Order("created_at asc").Find(&likers).Error
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(likers))
	for _, l := range likers {
		ids = append(ids, l.UserID)
	}
	return ids, nil
}

// syncReviewCount rewrites the place's review counter from the reviews
// table. Recompute, not increment, for the same reason as the vote
// aggregates.
func syncReviewCount(tx *gorm.DB, placeID uuid.UUID) error {
	var count int64
	if err := tx.Model(&models.Review{}).Where("place_id = ?", placeID).Count(&count).Error; err != nil {
		return err
	}
	return tx.Model(&models.Place{}).Where("id = ?", placeID).Update("review_count", count).Error
}
