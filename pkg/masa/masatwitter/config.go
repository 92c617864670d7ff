package masatwitter

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Default configuration values
const (
	// DefaultAPIEndpoint is the default URL for the Masa Twitter API endpoint
	DefaultAPIEndpoint = "http://localhost:8080/api/v1/data/twitter/tweets/recent"
	// DefaultRequestTimeout is the default timeout in seconds for API requests
	DefaultRequestTimeout = 120
	// DefaultTweetsPerRequest is the default number of tweets to fetch per
	// request, enough for the replies of most threads
	DefaultTweetsPerRequest = 50
)

// Config holds the Masa Twitter API configuration settings.
// Environment variables:
//   - MASA_TWITTER_API_ENDPOINT: API endpoint URL (default: http://localhost:8080/api/v1/data/twitter/tweets/recent)
//   - MASA_TWITTER_REQUEST_TIMEOUT: Request timeout in seconds (default: 120)
//   - MASA_TWITTER_TWEETS_PER_REQUEST: Number of tweets per request (default: 50)
type Config struct {
	// APIEndpoint is the URL for the Masa Twitter API
	APIEndpoint string
	// RequestTimeout is the duration to wait before timing out requests
	RequestTimeout time.Duration
	// TweetsPerRequest is the maximum number of tweets to fetch per request
	TweetsPerRequest int
	// Logger is the configured logrus logger instance
	Logger *logrus.Logger
}

// NewConfig creates a new Config instance with values from environment variables.
// The .env file is loaded if present, but its absence is not an error. Values
// that do not parse fall back to the defaults.
func NewConfig(logger *logrus.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}
	if logger == nil {
		logger = logrus.New()
	}

	config := &Config{
		APIEndpoint:      getEnvOrDefault("MASA_TWITTER_API_ENDPOINT", DefaultAPIEndpoint),
		RequestTimeout:   time.Duration(getIntOrDefault(logger, "MASA_TWITTER_REQUEST_TIMEOUT", DefaultRequestTimeout)) * time.Second,
		TweetsPerRequest: getIntOrDefault(logger, "MASA_TWITTER_TWEETS_PER_REQUEST", DefaultTweetsPerRequest),
		Logger:           logger,
	}

	logger.WithFields(logrus.Fields{
		"api_endpoint":       config.APIEndpoint,
		"request_timeout":    config.RequestTimeout.String(),
		"tweets_per_request": config.TweetsPerRequest,
	}).Debug("Created Masa Twitter config")

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks if the configuration is valid according to the following rules:
//   - APIEndpoint must not be empty
//   - Logger must be initialized
//   - RequestTimeout must be at least 1 second
//   - TweetsPerRequest must be positive
func (c *Config) Validate() error {
	if c.APIEndpoint == "" {
		return fmt.Errorf("masatwitter: API endpoint is required")
	}
	if c.Logger == nil {
		return fmt.Errorf("masatwitter: logger is required")
	}
	if c.RequestTimeout < 1*time.Second {
		return fmt.Errorf("masatwitter: request timeout must be at least 1 second, got %v", c.RequestTimeout)
	}
	if c.TweetsPerRequest < 1 {
		return fmt.Errorf("masatwitter: tweets per request must be positive, got %d", c.TweetsPerRequest)
	}
	return nil
}

// getEnvOrDefault retrieves an environment variable value by key,
// returning the defaultValue if the environment variable is not set or empty.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(logger *logrus.Logger, key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"key":     key,
			"value":   raw,
			"default": defaultValue,
		}).Debug("Failed to parse integer, using default")
		return defaultValue
	}
	return v
}
