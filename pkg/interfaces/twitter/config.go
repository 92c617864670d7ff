package twitter

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type TwitterConfig struct {
	// API Authentication
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
	BearerToken       string

	// API Endpoints
	BaseURL        string
	TweetEndpoint  string
	UserEndpoint   string
	SearchEndpoint string

	// Rate Limiting
	RateLimit  int // requests per window
	RateWindow int // window length in minutes

	// API Fields Configuration (based on Twitter v2 data dictionary)
	DefaultFields   []string
	UserFields      []string
	MediaFields     []string
	ExpansionFields []string

	// General Config
	Logger *logrus.Logger
}

func NewTwitterConfig() (*TwitterConfig, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	// Load rate limiting from env or use defaults
	rateLimit, _ := strconv.Atoi(getEnvOrDefault("TWITTER_RATE_LIMIT", "300"))
	rateWindow, _ := strconv.Atoi(getEnvOrDefault("TWITTER_RATE_WINDOW", "15"))

	config := &TwitterConfig{
		// API Authentication
		ConsumerKey:       os.Getenv("TWITTER_CONSUMER_KEY"),
		ConsumerSecret:    os.Getenv("TWITTER_CONSUMER_SECRET"),
		AccessToken:       os.Getenv("TWITTER_ACCESS_TOKEN"),
		AccessTokenSecret: os.Getenv("TWITTER_ACCESS_TOKEN_SECRET"),
		BearerToken:       getEnvOrDefault("TWITTER_AUTH_TOKEN", os.Getenv("TWITTER_BEARER_TOKEN")),

		// API Endpoints
		BaseURL:        getEnvOrDefault("TWITTER_API_BASE_URL", BaseURL),
		TweetEndpoint:  "/tweets",
		UserEndpoint:   "/users",
		SearchEndpoint: "/tweets/search/recent",

		// Rate Limiting
		RateLimit:  rateLimit,
		RateWindow: rateWindow,

		// Default API Fields (based on Twitter v2 data dictionary)
		DefaultFields: []string{
			"id",
			"text",
			"created_at",
			"author_id",
			"conversation_id",
			"entities",
			"attachments",
			"public_metrics",
		},
		UserFields: []string{
			"name",
			"username",
			"profile_image_url",
			"verified",
		},
		MediaFields: []string{
			"type",
			"url",
			"preview_image_url",
			"alt_text",
		},
		ExpansionFields: []string{
			"author_id",
			"attachments.media_keys",
		},

		Logger: func() *logrus.Logger {
			log := logrus.New()
			// Set log level from environment variable
			if level := os.Getenv("LOG_LEVEL"); level != "" {
				if parsedLevel, err := logrus.ParseLevel(level); err == nil {
					log.SetLevel(parsedLevel)
				}
			}
			return log
		}(),
	}

	config.Logger.WithFields(logrus.Fields{
		"consumer_key_exists": config.ConsumerKey != "",
		"bearer_token_exists": config.BearerToken != "",
		"base_url":            config.BaseURL,
		"rate_limit":          config.RateLimit,
	}).Debug("Twitter config initialized")

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *TwitterConfig) Validate() error {
	// Validate logger
	if c.Logger == nil {
		return fmt.Errorf("logger is required")
	}

	c.Logger.Debug("Validating Twitter configuration")

	if !c.HasReadAccess() {
		c.Logger.WithFields(logrus.Fields{
			"consumer_key_exists":        c.ConsumerKey != "",
			"consumer_secret_exists":     c.ConsumerSecret != "",
			"access_token_exists":        c.AccessToken != "",
			"access_token_secret_exists": c.AccessTokenSecret != "",
		}).Debug("OAuth credentials validation")
		return fmt.Errorf("either OAuth 1.0a credentials or Bearer token must be provided")
	}

	// Validate rate limiting
	if c.RateLimit < 1 {
		return fmt.Errorf("rate limit must be positive")
	}
	if c.RateWindow < 1 {
		return fmt.Errorf("rate window must be positive")
	}

	// Set default endpoints if not provided
	if c.BaseURL == "" {
		c.BaseURL = BaseURL
	}
	if c.TweetEndpoint == "" {
		c.TweetEndpoint = "/tweets"
	}
	if c.UserEndpoint == "" {
		c.UserEndpoint = "/users"
	}
	if c.SearchEndpoint == "" {
		c.SearchEndpoint = "/tweets/search/recent"
	}

	c.Logger.Debug("Twitter configuration validation completed successfully")
	return nil
}

// Helper function to get environment variable with default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// RequestInterval is the spacing between requests once the burst is spent
func (c *TwitterConfig) RequestInterval() time.Duration {
	return time.Duration(c.RateWindow) * time.Minute / time.Duration(c.RateLimit)
}

// GetTweetFields returns the default tweet fields plus any additional fields
func (c *TwitterConfig) GetTweetFields(additionalFields ...string) []string {
	fields := append([]string{}, c.DefaultFields...)
	fields = append(fields, additionalFields...)

	c.Logger.WithFields(logrus.Fields{
		"default_fields":    c.DefaultFields,
		"additional_fields": additionalFields,
		"final_fields":      fields,
	}).Debug("Constructed tweet fields")

	return fields
}

// GetExpansions returns the configured expansion fields
func (c *TwitterConfig) GetExpansions() []string {
	return c.ExpansionFields
}

// HasUserContext returns true if OAuth 1.0a credentials are configured
func (c *TwitterConfig) HasUserContext() bool {
	return c.ConsumerKey != "" && c.ConsumerSecret != "" &&
		c.AccessToken != "" && c.AccessTokenSecret != ""
}

// HasReadAccess returns true if either OAuth 1.0a or Bearer token is configured
func (c *TwitterConfig) HasReadAccess() bool {
	return c.HasUserContext() || c.BearerToken != ""
}
