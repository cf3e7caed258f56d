package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/kebabkartan/backend/internal/models"
	"github.com/kebabkartan/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
}

// IPlaceService defines the interface for restaurant directory operations
type IPlaceService interface {
	List(ctx context.Context, search, tag string) ([]models.Place, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Place, error)
	GetBySlug(ctx context.Context, slug string) (*models.Place, error)
	Create(ctx context.Context, req *types.CreatePlaceRequest) (*models.Place, error)
	Update(ctx context.Context, id uuid.UUID, req *types.UpdatePlaceRequest) (*models.Place, error)
	SetImageURL(ctx context.Context, id uuid.UUID, url string) error
	CheckAdminPassword(password string) error
}

// IRatingService defines the interface for vote operations
type IRatingService interface {
	SubmitVote(ctx context.Context, userID, placeID uuid.UUID, general int, sauce *int) (*types.SubmitRatingResponse, error)
	GetUserVote(ctx context.Context, userID, placeID uuid.UUID) (*models.Vote, error)
	ListUserVotes(ctx context.Context, userID uuid.UUID) ([]models.Vote, error)
}

// IReviewService defines the interface for review operations
type IReviewService interface {
	Create(ctx context.Context, userID uuid.UUID, req *types.CreateReviewRequest) (*types.ReviewResponse, error)
	Update(ctx context.Context, userID uuid.UUID, req *types.UpdateReviewRequest) (*types.ReviewResponse, error)
	Delete(ctx context.Context, userID, reviewID uuid.UUID) error
	ToggleLike(ctx context.Context, userID, reviewID uuid.UUID) (*types.LikeResponse, error)
	ListByPlace(ctx context.Context, placeID uuid.UUID) ([]types.ReviewResponse, error)
}
