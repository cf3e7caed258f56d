package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kebabkartan/backend/internal/models"
	"github.com/kebabkartan/backend/internal/testhelpers"
)

// Exercises the postgres-specific query paths (jsonb tag filtering, the
// unique vote index) against a real database.
func TestIntegrationPostgres(t *testing.T) {
	db := testhelpers.SetupPostgres(t)
	ctx := context.Background()

	placeService := NewPlaceService(db, "hemligt")
	ratingService := NewRatingService(db)

	place := models.Place{
		ID:        uuid.New(),
		Name:      "Kebab Kungen",
		Slug:      "restaurang/kebab-kungen",
		City:      "Stockholm",
		Latitude:  59.3326,
		Longitude: 18.0649,
		Tags:      models.TagList{"Kebab", "Pizza"},
	}
	require.NoError(t, db.Create(&place).Error)

	byTag, err := placeService.List(ctx, "", "Pizza")
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, place.ID, byTag[0].ID)

	none, err := placeService.List(ctx, "", "Falafel")
	require.NoError(t, err)
	assert.Empty(t, none)

	user := models.User{ID: uuid.New(), Name: "Anna", Email: "anna@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	first, err := ratingService.SubmitVote(ctx, user.ID, place.ID, 4, intPtr(5))
	require.NoError(t, err)
	assert.Equal(t, 1, first.VoteCount)

	// Second submission replaces the row; the unique index on
	// (place_id, user_id) guarantees one vote per user even under postgres
	second, err := ratingService.SubmitVote(ctx, user.ID, place.ID, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, second.VoteCount)
	assert.Equal(t, 2.0, second.AverageRating)

	var count int64
	require.NoError(t, db.Model(&models.Vote{}).Where("place_id = ?", place.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
