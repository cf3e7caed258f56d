package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kebabkartan/backend/internal/service"
	"github.com/kebabkartan/backend/internal/types"
)

type ReviewHandler struct {
	reviewService service.IReviewService
	captcha       service.CaptchaVerifier
}

func NewReviewHandler(reviewService service.IReviewService, captcha service.CaptchaVerifier) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		captcha:       captcha,
	}
}

// RegisterPublicRoutes registers the read-only review routes.
func (h *ReviewHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/reviews", h.ListReviews)
}

// RegisterProtectedRoutes registers the mutating review routes; the group
// must carry the auth middleware.
func (h *ReviewHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.POST("/reviews", h.CreateReview)
	router.PUT("/reviews", h.UpdateReview)
	router.DELETE("/reviews", h.DeleteReview)
	router.POST("/reviews/:id/like", h.ToggleLike)
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	placeID, err := uuid.Parse(c.Query("restaurantId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "restaurantId is required"})
		return
	}

	reviews, err := h.reviewService.ListByPlace(c.Request.Context(), placeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.captcha.Verify(c.Request.Context(), req.CaptchaToken); err != nil {
		respondError(c, err)
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// DeleteReview keeps the legacy query-parameter shape (?id=&userId=), but
// authorization no longer trusts the client-supplied userId: it must match
// the verified token identity.
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	reviewID, err := uuid.Parse(c.Query("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}

	if claimed := c.Query("userId"); claimed != "" && claimed != userID.String() {
		c.JSON(http.StatusForbidden, gin.H{"error": "userId does not match the authenticated user"})
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), userID, reviewID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}

func (h *ReviewHandler) ToggleLike(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}

	result, err := h.reviewService.ToggleLike(c.Request.Context(), userID, reviewID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
