package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kebabkartan/backend/internal/service"
	"github.com/kebabkartan/backend/internal/types"
)

type RatingHandler struct {
	ratingService service.IRatingService
	captcha       service.CaptchaVerifier
}

func NewRatingHandler(ratingService service.IRatingService, captcha service.CaptchaVerifier) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
		captcha:       captcha,
	}
}

// RegisterSubmitRoutes registers the vote submission route; the group must
// carry the auth middleware (and normally the submission rate limiter).
func (h *RatingHandler) RegisterSubmitRoutes(router *gin.RouterGroup) {
	router.POST("/ratings", h.SubmitRating)
}

// RegisterReadRoutes registers the vote read routes; the group must carry
// the auth middleware.
func (h *RatingHandler) RegisterReadRoutes(router *gin.RouterGroup) {
	router.GET("/user-votes", h.ListUserVotes)
	router.GET("/user-votes/:placeId", h.GetUserVote)
}

func (h *RatingHandler) SubmitRating(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.captcha.Verify(c.Request.Context(), req.CaptchaToken); err != nil {
		respondError(c, err)
		return
	}

	// Legacy clients send a single `rating`; fall back to it when the
	// dual-rating fields are absent.
	general := req.GeneralRating
	var sauce *int
	if req.SauceRating != 0 {
		s := req.SauceRating
		sauce = &s
	}
	if general == 0 && req.Rating != 0 {
		general = req.Rating
	}

	result, err := h.ratingService.SubmitVote(c.Request.Context(), userID, req.PlaceID, general, sauce)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *RatingHandler) GetUserVote(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	placeID, err := uuid.Parse(c.Param("placeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid place id"})
		return
	}

	vote, err := h.ratingService.GetUserVote(c.Request.Context(), userID, placeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewVoteResponse(*vote))
}

func (h *RatingHandler) ListUserVotes(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	votes, err := h.ratingService.ListUserVotes(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]types.VoteResponse, 0, len(votes))
	for _, v := range votes {
		responses = append(responses, types.NewVoteResponse(v))
	}
	c.JSON(http.StatusOK, gin.H{"votes": responses})
}
