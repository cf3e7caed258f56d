package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kebabkartan/backend/internal/models"
	"github.com/kebabkartan/backend/internal/types"
)

func newReviewRequest(placeID uuid.UUID) *types.CreateReviewRequest {
	return &types.CreateReviewRequest{
		RestaurantID:  placeID,
		DisplayName:   "Hungrig Henrik",
		GeneralRating: 5,
		SauceRating:   4,
		GeneralText:   "bra",
	}
}

func TestCreateReviewIncrementsCounter(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)
	place := createTestPlace(t, db)
	user := createTestUser(t, db, "henrik")

	review, err := svc.Create(context.Background(), user.ID, newReviewRequest(place.ID))
	require.NoError(t, err)
	assert.Equal(t, 5, review.GeneralRating)
	assert.Equal(t, 4, review.SauceRating)
	assert.Equal(t, "bra", review.GeneralText)
	assert.False(t, review.Edited)
	assert.Empty(t, review.LikedBy)

	var stored models.Place
	require.NoError(t, db.First(&stored, "id = ?", place.ID).Error)
	assert.Equal(t, 1, stored.ReviewCount)
}

func TestCreateReviewValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)
	place := createTestPlace(t, db)
	user := createTestUser(t, db, "henrik")

	req := newReviewRequest(place.ID)
	req.GeneralRating = 0
	_, err := svc.Create(context.Background(), user.ID, req)
	assert.ErrorIs(t, err, ErrInvalidRating)

	req = newReviewRequest(place.ID)
	req.SauceRating = 6
	_, err = svc.Create(context.Background(), user.ID, req)
	assert.ErrorIs(t, err, ErrInvalidRating)

	req = newReviewRequest(place.ID)
	req.GeneralText = strings.Repeat("a", models.MaxGeneralTextLen+1)
	_, err = svc.Create(context.Background(), user.ID, req)
	assert.ErrorIs(t, err, ErrTextTooLong)

	req = newReviewRequest(place.ID)
	req.SauceText = strings.Repeat("b", models.MaxSauceTextLen+1)
	_, err = svc.Create(context.Background(), user.ID, req)
	assert.ErrorIs(t, err, ErrTextTooLong)

	// Counter untouched by rejected submissions
	var stored models.Place
	require.NoError(t, db.First(&stored, "id = ?", place.ID).Error)
	assert.Equal(t, 0, stored.ReviewCount)
}

func TestCreateReviewUnknownPlace(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)
	user := createTestUser(t, db, "henrik")

	_, err := svc.Create(context.Background(), user.ID, newReviewRequest(uuid.New()))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateReviewOwnerOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)
	place := createTestPlace(t, db)
	author := createTestUser(t, db, "author")
	stranger := createTestUser(t, db, "stranger")

	created, err := svc.Create(context.Background(), author.ID, newReviewRequest(place.ID))
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), stranger.ID, &types.UpdateReviewRequest{
		ID:            created.ID,
		GeneralRating: intPtr(1),
	})
	assert.ErrorIs(t, err, ErrNotOwner)

	updated, err := svc.Update(context.Background(), author.ID, &types.UpdateReviewRequest{
		ID:          created.ID,
		GeneralText: strPtr("ännu bättre"),
	})
	require.NoError(t, err)
	assert.Equal(t, "ännu bättre", updated.GeneralText)
	assert.True(t, updated.Edited)
	// Untouched fields survive
	assert.Equal(t, 5, updated.GeneralRating)
}

func TestUpdateReviewValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)
	place := createTestPlace(t, db)
	author := createTestUser(t, db, "author")

	created, err := svc.Create(context.Background(), author.ID, newReviewRequest(place.ID))
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), author.ID, &types.UpdateReviewRequest{
		ID:            created.ID,
		GeneralRating: intPtr(9),
	})
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestDeleteReviewOwnerOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)
	place := createTestPlace(t, db)
	author := createTestUser(t, db, "author")
	stranger := createTestUser(t, db, "stranger")

	created, err := svc.Create(context.Background(), author.ID, newReviewRequest(place.ID))
	require.NoError(t, err)

	err = svc.Delete(context.Background(), stranger.ID, created.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	// Rejected delete must not touch the counter
	var stored models.Place
	require.NoError(t, db.First(&stored, "id = ?", place.ID).Error)
	assert.Equal(t, 1, stored.ReviewCount)

	require.NoError(t, svc.Delete(context.Background(), author.ID, created.ID))

	require.NoError(t, db.First(&stored, "id = ?", place.ID).Error)
	assert.Equal(t, 0, stored.ReviewCount)

	// Second delete is a clean not-found, not a second decrement
	err = svc.Delete(context.Background(), author.ID, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, db.First(&stored, "id = ?", place.ID).Error)
	assert.Equal(t, 0, stored.ReviewCount)
}

func TestDeleteReviewRemovesLikes(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)
	place := createTestPlace(t, db)
	author := createTestUser(t, db, "author")
	fan := createTestUser(t, db, "fan")

	created, err := svc.Create(context.Background(), author.ID, newReviewRequest(place.ID))
	require.NoError(t, err)
	_, err = svc.ToggleLike(context.Background(), fan.ID, created.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), author.ID, created.ID))

	var likeCount int64
	require.NoError(t, db.Model(&models.ReviewLike{}).Where("review_id = ?", created.ID).Count(&likeCount).Error)
	assert.EqualValues(t, 0, likeCount)
}

func TestToggleLike(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)
	place := createTestPlace(t, db)
	author := createTestUser(t, db, "author")
	fan := createTestUser(t, db, "fan")

	created, err := svc.Create(context.Background(), author.ID, newReviewRequest(place.ID))
	require.NoError(t, err)

	liked, err := svc.ToggleLike(context.Background(), fan.ID, created.ID)
	require.NoError(t, err)
	assert.True(t, liked.Liked)
	assert.Equal(t, 1, liked.Likes)
	assert.Equal(t, []uuid.UUID{fan.ID}, liked.LikedBy)

	unliked, err := svc.ToggleLike(context.Background(), fan.ID, created.ID)
	require.NoError(t, err)
	assert.False(t, unliked.Liked)
	assert.Equal(t, 0, unliked.Likes)
	assert.Empty(t, unliked.LikedBy)

	// Counter always equals the membership count
	var stored models.Review
	require.NoError(t, db.First(&stored, "id = ?", created.ID).Error)
	assert.Equal(t, 0, stored.Likes)
}

func TestToggleLikeUnknownReview(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)
	fan := createTestUser(t, db, "fan")

	_, err := svc.ToggleLike(context.Background(), fan.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByPlaceNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)
	place := createTestPlace(t, db)

	var ids []uuid.UUID
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		user := createTestUser(t, db, "reviewer")
		created, err := svc.Create(context.Background(), user.ID, newReviewRequest(place.ID))
		require.NoError(t, err)
		// Space timestamps out explicitly so ordering is deterministic
		require.NoError(t, db.Model(&models.Review{}).Where("id = ?", created.ID).
			Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
		ids = append(ids, created.ID)
	}

	reviews, err := svc.ListByPlace(context.Background(), place.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.Equal(t, ids[2], reviews[0].ID)
	assert.Equal(t, ids[1], reviews[1].ID)
	assert.Equal(t, ids[0], reviews[2].ID)
}

func strPtr(s string) *string {
	return &s
}
