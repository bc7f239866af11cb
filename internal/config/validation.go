package config

import (
	"fmt"
	"strings"
	"time"

	apperrors "meeting-minutes/internal/app/errors"
)

// ValidateTimeout validates an optional timeout duration; zero disables it
func ValidateTimeout(timeout time.Duration, name string) error {
	if timeout < 0 {
		return fmt.Errorf("%s timeout cannot be negative", name)
	}
	if timeout > MaxCallTimeout {
		return fmt.Errorf("%s timeout too large (max 30 minutes)", name)
	}
	return nil
}

// ValidateConcurrency validates concurrency setting
func ValidateConcurrency(concurrency int, name string) error {
	if concurrency <= 0 {
		return fmt.Errorf("%s concurrency must be positive", name)
	}
	if concurrency > MaxConcurrency {
		return fmt.Errorf("%s concurrency too high (max %d)", name, MaxConcurrency)
	}
	return nil
}

// ValidateWindow validates the segment window size in seconds
func ValidateWindow(seconds int) error {
	if seconds <= 0 {
		return fmt.Errorf("window size must be positive")
	}
	if seconds > MaxWindowSeconds {
		return apperrors.OutOfRange("window size", 1, MaxWindowSeconds)
	}
	return nil
}

// ValidateAPIKey validates API key format
func ValidateAPIKey(apiKey string, keyType string) error {
	if apiKey == "" {
		return fmt.Errorf("%s API key is required", keyType)
	}

	switch keyType {
	case "OpenAI":
		if !strings.HasPrefix(apiKey, "sk-") {
			return fmt.Errorf("invalid OPENAI_API_KEY format: must start with 'sk-'")
		}
		if len(apiKey) < 20 {
			return fmt.Errorf("invalid OPENAI_API_KEY format: too short")
		}
	}

	return nil
}

// ValidateURL validates URL format
func ValidateURL(url string, name string) error {
	if url == "" {
		return fmt.Errorf("%s URL is required", name)
	}

	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("%s URL must start with http:// or https://", name)
	}

	return nil
}

// ValidatePort validates port number
func ValidatePort(port string, name string) error {
	if port == "" {
		return fmt.Errorf("%s port is required", name)
	}

	if len(port) > 5 {
		return fmt.Errorf("%s port invalid", name)
	}

	return nil
}
