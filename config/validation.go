package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that everything required at process start is set.
// Missing database credentials are a fatal startup error.
func ValidateConfig(cfg *Config) error {
	var errs []string

	required := map[string]string{
		"DB_HOST":     cfg.DBHost,
		"DB_USER":     cfg.DBUser,
		"DB_PASSWORD": cfg.DBPassword,
		"DB_NAME":     cfg.DBName,
		"JWT_SECRET":  cfg.JWTSecret,
	}
	for field, value := range required {
		if value == "" {
			errs = append(errs, ValidationError{Field: field, Message: "is required"}.Error())
		}
	}

	if cfg.AdminPassword == "" {
		errs = append(errs, ValidationError{Field: "ADMIN_PASSWORD", Message: "is required"}.Error())
	}

	if cfg.CaptchaMinScore < 0 || cfg.CaptchaMinScore > 1 {
		errs = append(errs, ValidationError{Field: "CAPTCHA_MIN_SCORE", Message: "must be between 0 and 1"}.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}
