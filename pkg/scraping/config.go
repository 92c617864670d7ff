// Package scraping resolves the IDs of a thread without the Twitter API.
// The default backend reads the conversation page of a Nitter front end; the
// masa backend asks a Masa protocol relay.
package scraping

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Backend names accepted in SCRAPER_BACKEND
const (
	BackendNitter = "nitter"
	BackendMasa   = "masa"
)

// Default configuration values
const (
	DefaultNitterBaseURL = "https://nitter.net"
	DefaultTimeout       = 30 * time.Second
	DefaultUserAgent     = "Mozilla/5.0 (compatible; twindle)"
)

// Config selects and configures the scraping backend.
// Environment variables:
//   - SCRAPER_BACKEND: nitter (default) or masa
//   - NITTER_BASE_URL: Nitter instance (default: https://nitter.net)
type Config struct {
	Backend       string
	NitterBaseURL string
	Timeout       time.Duration
	UserAgent     string
	Logger        *logrus.Logger
}

// NewConfig reads the backend settings from the environment, loading .env first
func NewConfig(logger *logrus.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	config := &Config{
		Backend:       strings.ToLower(getEnvOrDefault("SCRAPER_BACKEND", BackendNitter)),
		NitterBaseURL: getEnvOrDefault("NITTER_BASE_URL", DefaultNitterBaseURL),
		Timeout:       DefaultTimeout,
		UserAgent:     DefaultUserAgent,
		Logger:        logger,
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the backend name and fills defaults
func (c *Config) Validate() error {
	switch c.Backend {
	case "":
		c.Backend = BackendNitter
	case BackendNitter, BackendMasa:
	default:
		return fmt.Errorf("scraping: unknown backend %q, want %s or %s", c.Backend, BackendNitter, BackendMasa)
	}
	if c.NitterBaseURL == "" {
		c.NitterBaseURL = DefaultNitterBaseURL
	}
	c.NitterBaseURL = strings.TrimRight(c.NitterBaseURL, "/")
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
