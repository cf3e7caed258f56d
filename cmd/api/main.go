package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/kebabkartan/backend/config"
	"github.com/kebabkartan/backend/internal/api"
	"github.com/kebabkartan/backend/internal/database"
	"github.com/kebabkartan/backend/internal/middleware"
	"github.com/kebabkartan/backend/internal/router"
	"github.com/kebabkartan/backend/internal/server"
	"github.com/kebabkartan/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Redis backs rate limiting and the geolocation cache; the API stays up
	// without it.
	var limiter *middleware.RateLimiter
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, rate limiting disabled: %v", err)
	} else {
		limiter = middleware.NewSubmissionRateLimiter(redisClient)
	}

	// Image uploads need S3; the rest of the API works without it.
	var imageService *service.ImageService
	s3Cfg, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		log.Printf("S3 unavailable, image uploads disabled: %v", err)
	} else {
		imageService = service.NewImageService(s3Cfg)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	placeService := service.NewPlaceService(db, cfg.AdminPassword)
	ratingService := service.NewRatingService(db)
	reviewService := service.NewReviewService(db)
	captchaService := service.NewCaptchaService(cfg.CaptchaSecret, cfg.CaptchaVerifyURL, cfg.CaptchaMinScore)
	geoService := service.NewGeoIPService(cfg.GeoIPAPIURL, redisClient)

	engine := router.SetupRouter(router.Handlers{
		Auth:   api.NewAuthHandler(authService),
		Place:  api.NewPlaceHandler(placeService, imageService),
		Review: api.NewReviewHandler(reviewService, captchaService),
		Rating: api.NewRatingHandler(ratingService, captchaService),
		Client: api.NewClientHandler(geoService, cfg),
	}, authService, limiter)

	srv := server.New(engine, cfg.ServerPort)

	errChan := make(chan error, 1)
	go func() {
		log.Println("Starting server...")
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
