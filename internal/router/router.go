package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/kebabkartan/backend/internal/api"
	"github.com/kebabkartan/backend/internal/middleware"
)

// Handlers collects everything the route table needs.
type Handlers struct {
	Auth   *api.AuthHandler
	Place  *api.PlaceHandler
	Review *api.ReviewHandler
	Rating *api.RatingHandler
	Client *api.ClientHandler
}

// SetupRouter configures the application routes
func SetupRouter(
	h Handlers,
	authService middleware.TokenValidator,
	limiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://kebabkartan.se", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// The legacy client talks to /api without versioning; keep that shape.
	apiGroup := router.Group("/api")

	h.Auth.RegisterRoutes(apiGroup)
	h.Place.RegisterRoutes(apiGroup)
	h.Review.RegisterPublicRoutes(apiGroup)
	h.Client.RegisterRoutes(apiGroup)

	protected := apiGroup.Group("")
	protected.Use(middleware.AuthMiddleware(authService))

	submissions := protected.Group("")
	if limiter != nil {
		submissions.Use(limiter.RateLimitMiddleware())
	}
	h.Review.RegisterProtectedRoutes(submissions)
	h.Rating.RegisterSubmitRoutes(submissions)
	h.Rating.RegisterReadRoutes(protected)

	return router
}
