package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kebabkartan/backend/internal/service"
)

// respondError translates service errors to the HTTP taxonomy: validation
// 400, bad admin password 401, ownership/captcha 403, missing records 404,
// everything else a logged 500 with a generic body.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrTextTooLong),
		errors.Is(err, service.ErrInvalidSlug),
		errors.Is(err, service.ErrInvalidTag),
		errors.Is(err, service.ErrSlugTaken),
		errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrBadAdminPassword),
		errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotOwner),
		errors.Is(err, service.ErrCaptchaFailed):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// actingUser returns the identity the auth middleware derived from the
// verified token.
func actingUser(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
