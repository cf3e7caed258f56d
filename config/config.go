package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	GinMode    string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT configuration
	JWTSecret string

	// Shared admin password gating restaurant create/update
	AdminPassword string

	// Anti-abuse verification
	CaptchaSecret    string
	CaptchaVerifyURL string
	CaptchaMinScore  float64

	// Object storage
	S3Bucket  string
	AWSRegion string

	// IP geolocation provider (best effort, may be empty)
	GeoIPAPIURL string

	// Analytics measurement id handed to consenting clients
	AnalyticsMeasurementID string

	// Debug flags
	Debug bool
}

// LoadConfig builds a Config from the environment. A .env file in the
// working directory is merged in first when present.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	cfg := &Config{
		ServerPort:             getEnv("PORT", "8080"),
		GinMode:                getEnv("GIN_MODE", "debug"),
		DBHost:                 os.Getenv("DB_HOST"),
		DBPort:                 getEnv("DB_PORT", "5432"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBSSLMode:              getEnv("DB_SSL_MODE", "disable"),
		RedisHost:              getEnv("REDIS_HOST", "localhost"),
		RedisPort:              getEnv("REDIS_PORT", "6379"),
		RedisPassword:          os.Getenv("REDIS_PASSWORD"),
		RedisDB:                getEnvInt("REDIS_DB", 0),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		AdminPassword:          os.Getenv("ADMIN_PASSWORD"),
		CaptchaSecret:          os.Getenv("CAPTCHA_SECRET"),
		CaptchaVerifyURL:       getEnv("CAPTCHA_VERIFY_URL", "https://www.google.com/recaptcha/api/siteverify"),
		CaptchaMinScore:        getEnvFloat("CAPTCHA_MIN_SCORE", 0.5),
		S3Bucket:               getEnv("S3_BUCKET_NAME", "kebabkartan-place-photos"),
		AWSRegion:              getEnv("AWS_REGION", "eu-north-1"),
		GeoIPAPIURL:            os.Getenv("GEOIP_API_URL"),
		AnalyticsMeasurementID: os.Getenv("ANALYTICS_MEASUREMENT_ID"),
		Debug:                  os.Getenv("DEBUG") == "true",
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid integer for %s: %q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("Invalid float for %s: %q, using %g", key, v, fallback)
		return fallback
	}
	return f
}
