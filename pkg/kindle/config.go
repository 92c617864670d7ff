// Package kindle delivers rendered documents to a Kindle personal document
// address through an SMTP relay.
package kindle

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
	// DefaultPort is the implicit TLS submission port
	DefaultPort = 465
	// DefaultSubject makes Kindle convert attachments to its own format
	DefaultSubject = "Convert"
	// DefaultTimeout bounds the whole SMTP conversation
	DefaultTimeout = 60 * time.Second
)

// Config holds the mail relay settings.
// Environment variables:
//   - HOST: SMTP relay host
//   - SMTP_PORT: relay port (default: 465, implicit TLS; any other port uses STARTTLS)
//   - EMAIL: account used to log in and as sender address
//   - PASS: account password
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Subject  string
	Timeout  time.Duration
	Logger   *logrus.Logger
}

// NewConfig reads the relay settings from the environment, loading .env first
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	port := DefaultPort
	if raw := os.Getenv("SMTP_PORT"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("kindle: invalid SMTP_PORT %q: %w", raw, err)
		}
		port = p
	}

	config := &Config{
		Host:     os.Getenv("HOST"),
		Port:     port,
		Username: os.Getenv("EMAIL"),
		Password: os.Getenv("PASS"),
		From:     os.Getenv("EMAIL"),
		Subject:  DefaultSubject,
		Timeout:  DefaultTimeout,
		Logger:   logrus.New(),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks that the relay can be reached and logged into
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("kindle: mail host is required")
	}
	if c.Username == "" || c.Password == "" {
		return fmt.Errorf("kindle: mail account and password are required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("kindle: mail port must be between 1 and 65535, got %d", c.Port)
	}
	if c.From == "" {
		c.From = c.Username
	}
	if c.Subject == "" {
		c.Subject = DefaultSubject
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
	return nil
}
