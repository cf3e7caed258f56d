package api_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kebabkartan/backend/internal/types"
)

func TestSubmitRating(t *testing.T) {
	env := setupTestEnv(t)
	place := env.createPlace(t, "Kebab Kungen", "restaurang/kebab-kungen")
	token, _ := env.registerUser(t, "anna")

	w := env.performRequest(t, http.MethodPost, "/api/ratings", token, types.SubmitRatingRequest{
		PlaceID:       place.ID,
		GeneralRating: 4,
		SauceRating:   5,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.SubmitRatingResponse
	decodeBody(t, w, &resp)
	assert.True(t, resp.Changed)
	assert.Equal(t, 4.0, resp.AverageRating)
	assert.Equal(t, 1, resp.VoteCount)

	// Same vote again changes nothing
	w = env.performRequest(t, http.MethodPost, "/api/ratings", token, types.SubmitRatingRequest{
		PlaceID:       place.ID,
		GeneralRating: 4,
		SauceRating:   5,
	})
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &resp)
	assert.False(t, resp.Changed)
	assert.Equal(t, 1, resp.VoteCount)
}

func TestSubmitRatingLegacyField(t *testing.T) {
	env := setupTestEnv(t)
	place := env.createPlace(t, "Kebab Kungen", "restaurang/kebab-kungen")
	token, _ := env.registerUser(t, "anna")

	w := env.performRequest(t, http.MethodPost, "/api/ratings", token, types.SubmitRatingRequest{
		PlaceID: place.ID,
		Rating:  3,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.SubmitRatingResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, 3.0, resp.AverageRating)
}

func TestSubmitRatingRequiresAuth(t *testing.T) {
	env := setupTestEnv(t)
	place := env.createPlace(t, "Kebab Kungen", "restaurang/kebab-kungen")

	w := env.performRequest(t, http.MethodPost, "/api/ratings", "", types.SubmitRatingRequest{
		PlaceID:       place.ID,
		GeneralRating: 4,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubmitRatingCaptchaRejected(t *testing.T) {
	env := setupTestEnv(t)
	place := env.createPlace(t, "Kebab Kungen", "restaurang/kebab-kungen")
	token, _ := env.registerUser(t, "anna")

	env.captcha.fail = true
	w := env.performRequest(t, http.MethodPost, "/api/ratings", token, types.SubmitRatingRequest{
		PlaceID:       place.ID,
		GeneralRating: 4,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSubmitRatingBadValues(t *testing.T) {
	env := setupTestEnv(t)
	place := env.createPlace(t, "Kebab Kungen", "restaurang/kebab-kungen")
	token, _ := env.registerUser(t, "anna")

	w := env.performRequest(t, http.MethodPost, "/api/ratings", token, types.SubmitRatingRequest{
		PlaceID:       place.ID,
		GeneralRating: 6,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.performRequest(t, http.MethodPost, "/api/ratings", token, types.SubmitRatingRequest{
		PlaceID:       uuid.New(),
		GeneralRating: 4,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserVotesEndpoints(t *testing.T) {
	env := setupTestEnv(t)
	place := env.createPlace(t, "Kebab Kungen", "restaurang/kebab-kungen")
	token, _ := env.registerUser(t, "anna")

	w := env.performRequest(t, http.MethodPost, "/api/ratings", token, types.SubmitRatingRequest{
		PlaceID:       place.ID,
		GeneralRating: 5,
		SauceRating:   2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.performRequest(t, http.MethodGet, "/api/user-votes/"+place.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var vote types.VoteResponse
	decodeBody(t, w, &vote)
	assert.Equal(t, 5, vote.GeneralRating)
	// Legacy mirror of the general rating
	assert.Equal(t, 5, vote.Rating)

	w = env.performRequest(t, http.MethodGet, "/api/user-votes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Votes []types.VoteResponse `json:"votes"`
	}
	decodeBody(t, w, &list)
	require.Len(t, list.Votes, 1)
	assert.Equal(t, place.ID, list.Votes[0].PlaceID)

	// No vote for an unknown place
	w = env.performRequest(t, http.MethodGet, "/api/user-votes/"+uuid.NewString(), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
