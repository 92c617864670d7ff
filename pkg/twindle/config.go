package twindle

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/lisanmuaddib/twindle/pkg/render"
)

// RunConfig is resolved once from the command line and never mutated
type RunConfig struct {
	Format           render.Format
	OutputFilename   string
	AppendToFilename string
	OutputDir        string

	TweetID   string
	UserID    string
	NumTweets int

	Mock   bool
	Scrape bool

	// Deliver is set when the delivery flag was present on the command line
	Deliver bool
	// KindleEmail is the address given inline after the delivery flag, if any
	KindleEmail string
}

// EnvConfig is the process wide configuration read from the environment.
// Environment variables:
//   - TWITTER_AUTH_TOKEN (or TWITTER_BEARER_TOKEN): API bearer token
//   - HOST, EMAIL, PASS: mail relay host, account and password
//   - KINDLE_EMAIL: default Kindle address
//   - DEV: "true" enables verbose error output
type EnvConfig struct {
	BearerToken  string
	MailHost     string
	MailAccount  string
	MailPassword string
	KindleEmail  string
	Dev          bool
}

// NewEnvConfig loads .env if present and reads the environment
func NewEnvConfig() (*EnvConfig, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	return &EnvConfig{
		BearerToken:  getEnvOrDefault("TWITTER_AUTH_TOKEN", os.Getenv("TWITTER_BEARER_TOKEN")),
		MailHost:     os.Getenv("HOST"),
		MailAccount:  os.Getenv("EMAIL"),
		MailPassword: os.Getenv("PASS"),
		KindleEmail:  strings.TrimSpace(os.Getenv("KINDLE_EMAIL")),
		Dev:          IsDev(),
	}, nil
}

// IsDev reports whether DEV=true is set
func IsDev() bool {
	return strings.EqualFold(strings.TrimSpace(os.Getenv("DEV")), "true")
}

// HasMailServer returns true when host, account and password are all set
func (e EnvConfig) HasMailServer() bool {
	return e.MailHost != "" && e.MailAccount != "" && e.MailPassword != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
