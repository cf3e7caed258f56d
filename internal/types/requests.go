package types

import (
	"github.com/google/uuid"

	"github.com/kebabkartan/backend/internal/models"
)

// Auth API types

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

// Place API types

// CreatePlaceRequest carries the admin-gated restaurant create form. The
// shared admin password travels in the body, matching the legacy API shape.
type CreatePlaceRequest struct {
	AdminPassword string   `json:"adminPassword" binding:"required"`
	Name          string   `json:"name" binding:"required,max=255"`
	Slug          string   `json:"slug" binding:"required"`
	City          string   `json:"city"`
	Address       string   `json:"address"`
	Latitude      float64  `json:"latitude" binding:"required"`
	Longitude     float64  `json:"longitude" binding:"required"`
	OpeningHours  string   `json:"openingHours"`
	PriceRange    string   `json:"priceRange"`
	Tags          []string `json:"tags"`
}

// UpdatePlaceRequest uses pointers so an admin edit only touches the fields
// it actually sends.
type UpdatePlaceRequest struct {
	AdminPassword string    `json:"adminPassword" binding:"required"`
	Name          *string   `json:"name"`
	Slug          *string   `json:"slug"`
	City          *string   `json:"city"`
	Address       *string   `json:"address"`
	Latitude      *float64  `json:"latitude"`
	Longitude     *float64  `json:"longitude"`
	OpeningHours  *string   `json:"openingHours"`
	PriceRange    *string   `json:"priceRange"`
	Tags          *[]string `json:"tags"`
}

// Rating API types

// SubmitRatingRequest carries a vote. Rating is the legacy single-rating
// field; when GeneralRating is absent it is used as a fallback so old
// clients keep working.
type SubmitRatingRequest struct {
	PlaceID       uuid.UUID `json:"placeId" binding:"required"`
	GeneralRating int       `json:"generalRating"`
	SauceRating   int       `json:"sauceRating"`
	Rating        int       `json:"rating"`
	CaptchaToken  string    `json:"captchaToken"`
}

// SubmitRatingResponse returns the recomputed aggregates so the client can
// merge them into held state instead of reloading the page.
type SubmitRatingResponse struct {
	Changed       bool    `json:"changed"`
	AverageRating float64 `json:"averageRating"`
	VoteCount     int     `json:"voteCount"`
}

// VoteResponse mirrors GeneralRating into the legacy `rating` field for
// old clients; the dual-rating fields are authoritative.
type VoteResponse struct {
	models.Vote
	Rating int `json:"rating"`
}

func NewVoteResponse(v models.Vote) VoteResponse {
	return VoteResponse{Vote: v, Rating: v.GeneralRating}
}

// Review API types

type CreateReviewRequest struct {
	RestaurantID  uuid.UUID `json:"restaurantId" binding:"required"`
	DisplayName   string    `json:"displayName" binding:"required,max=100"`
	GeneralRating int       `json:"generalRating" binding:"required"`
	SauceRating   int       `json:"sauceRating" binding:"required"`
	GeneralText   string    `json:"generalText"`
	SauceText     string    `json:"sauceText"`
	CaptchaToken  string    `json:"captchaToken"`
}

type UpdateReviewRequest struct {
	ID            uuid.UUID `json:"id" binding:"required"`
	GeneralRating *int      `json:"generalRating"`
	SauceRating   *int      `json:"sauceRating"`
	GeneralText   *string   `json:"generalText"`
	SauceText     *string   `json:"sauceText"`
}

// ReviewResponse adds the liking-user set next to the denormalized counter.
type ReviewResponse struct {
	models.Review
	LikedBy []uuid.UUID `json:"likedBy"`
}

type LikeResponse struct {
	Liked   bool        `json:"liked"`
	Likes   int         `json:"likes"`
	LikedBy []uuid.UUID `json:"likedBy"`
}

// Geolocation API types

// GeoResponse is a map viewport suggestion. Best effort: lookup failures
// return the country-wide default rather than an error.
type GeoResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      int     `json:"zoom"`
	City      string  `json:"city,omitempty"`
}

// Client config types

type ClientConfigResponse struct {
	AnalyticsMeasurementID string `json:"analyticsMeasurementId,omitempty"`
	MarketingEnabled       bool   `json:"marketingEnabled"`
}
