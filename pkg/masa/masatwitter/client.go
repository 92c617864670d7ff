// Package masatwitter provides functionality for interacting with the Masa Protocol Twitter API
package masatwitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// Client handles Masa Twitter API interactions by providing methods to search and retrieve tweets.
// It manages configuration and HTTP client lifecycle.
type Client struct {
	config *Config
	client *http.Client
	logger *logrus.Logger
}

// SearchRequest represents the search query parameters sent to the API.
type SearchRequest struct {
	// Query is the search term or filter to apply
	Query string `json:"query"`
	// Count specifies the maximum number of tweets to return
	Count int `json:"count"`
}

// SearchOptions allows customizing the search request parameters.
type SearchOptions struct {
	// TweetCount specifies the maximum number of tweets to return
	TweetCount int
}

// NewClient creates a new Masa Twitter API client with the provided configuration.
// It initializes an HTTP client with the configured timeout.
func NewClient(config *Config) *Client {
	return &Client{
		config: config,
		client: &http.Client{
			Timeout: config.RequestTimeout,
		},
		logger: config.Logger,
	}
}

// Search performs a search request with the configured default tweet count.
func (c *Client) Search(ctx context.Context, query string) ([]Tweet, error) {
	return c.SearchWithOptions(ctx, query, SearchOptions{
		TweetCount: c.config.TweetsPerRequest,
	})
}

// SearchWithOptions performs a search request to the Masa Twitter API with custom options.
// A 429 from the relay becomes a *RateLimitError, any other failure status an *APIError.
func (c *Client) SearchWithOptions(ctx context.Context, query string, opts SearchOptions) ([]Tweet, error) {
	log := c.logger.WithFields(logrus.Fields{
		"query":       query,
		"tweet_count": opts.TweetCount,
	})

	jsonBody, err := json.Marshal(SearchRequest{
		Query: query,
		Count: opts.TweetCount,
	})
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.APIEndpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	log.WithField("endpoint", c.config.APIEndpoint).Debug("Sending search request")

	resp, err := c.client.Do(req)
	if err != nil {
		log.WithError(err).Error("HTTP request failed")
		return nil, &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == StatusRateLimit {
			log.Warn("Rate limit exceeded")
			return nil, NewRateLimitError(retryAfter(resp.Header.Get("Retry-After")), "")
		}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.WithField("status_code", resp.StatusCode).Error("Unexpected status code")
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status code: %d %s", resp.StatusCode, bytes.TrimSpace(body)),
		}
	}

	// Keep the intermediate structure for unmarshaling
	var response struct {
		Data []struct {
			Tweet Tweet `json:"Tweet"`
		} `json:"data"`
		WorkerPeerID string `json:"workerPeerId"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		log.WithError(err).Error("Failed to decode response")
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	// Extract just the tweets
	tweets := make([]Tweet, len(response.Data))
	for i, item := range response.Data {
		tweets[i] = item.Tweet
	}

	log.WithFields(logrus.Fields{
		"tweets_count": len(tweets),
		"worker":       response.WorkerPeerID,
	}).Debug("Successfully decoded response")

	return tweets, nil
}

func retryAfter(header string) time.Duration {
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
