package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("DB_NAME", "kebabkartan")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_PASSWORD", "hemligt")
}

func TestLoadConfig(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "postgres", cfg.DBUser)
	assert.Equal(t, "postgres", cfg.DBPassword)
	assert.Equal(t, "kebabkartan", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "hemligt", cfg.AdminPassword)

	// Defaults
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 0.5, cfg.CaptchaMinScore)
	assert.Equal(t, "kebabkartan-place-photos", cfg.S3Bucket)
}

func TestLoadConfigMissingDatabase(t *testing.T) {
	setRequiredEnv(t)
	os.Unsetenv("DB_HOST")
	os.Unsetenv("DB_PASSWORD")

	_, err := LoadConfig()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_HOST")
	assert.Contains(t, err.Error(), "DB_PASSWORD")
}

func TestLoadConfigMissingAdminPassword(t *testing.T) {
	setRequiredEnv(t)
	os.Unsetenv("ADMIN_PASSWORD")

	_, err := LoadConfig()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_PASSWORD")
}

func TestLoadConfigBadCaptchaScore(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CAPTCHA_MIN_SCORE", "1.5")

	_, err := LoadConfig()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "CAPTCHA_MIN_SCORE")
}
