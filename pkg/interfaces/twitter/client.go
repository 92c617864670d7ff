package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// ClientOption allows for customization of the client
type ClientOption func(*TwitterClient)

// WithHTTPClient replaces the authenticated transport. The bearer header is
// still applied to every request.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *TwitterClient) {
		c.httpClient = httpClient
	}
}

// WithLimiter replaces the request limiter built from the config
func WithLimiter(limiter *rate.Limiter) ClientOption {
	return func(c *TwitterClient) {
		c.limiter = limiter
	}
}

type TwitterClient struct {
	config     *TwitterConfig
	auth       *Authenticator
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

// NewTwitterClient creates a new Twitter API client
func NewTwitterClient(config *TwitterConfig, opts ...ClientOption) (*TwitterClient, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	auth, err := NewAuthenticator(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticator: %w", err)
	}

	client := &TwitterClient{
		config:     config,
		auth:       auth,
		httpClient: auth.GetClient(),
		limiter:    rate.NewLimiter(rate.Every(config.RequestInterval()), config.RateLimit),
		logger:     config.Logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// handleResponse checks for API errors in the response
func (c *TwitterClient) handleResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read error response: %w", err)
	}

	var errResp struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
		Errors []struct {
			Message string `json:"message"`
			Code    int    `json:"code"`
		} `json:"errors"`
	}

	if err := json.Unmarshal(body, &errResp); err != nil {
		return fmt.Errorf("twitter api error: status=%d body=%s", resp.StatusCode, string(body))
	}

	if len(errResp.Errors) > 0 {
		c.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"error_code":  errResp.Errors[0].Code,
			"message":     errResp.Errors[0].Message,
		}).Error("Twitter API error")
		return fmt.Errorf("twitter api error: code=%d message=%s",
			errResp.Errors[0].Code, errResp.Errors[0].Message)
	}

	if errResp.Detail != "" {
		c.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"title":       errResp.Title,
			"detail":      errResp.Detail,
		}).Error("Twitter API error")
		return fmt.Errorf("twitter api error: status=%d %s: %s", resp.StatusCode, errResp.Title, errResp.Detail)
	}

	return fmt.Errorf("twitter api error: status=%d", resp.StatusCode)
}

// getJSON performs a rate limited GET and decodes a successful body into out
func (c *TwitterClient) getJSON(ctx context.Context, endpoint string, query url.Values, out interface{}) error {
	resp, err := c.makeRequest(ctx, http.MethodGet, endpoint, query)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.handleResponse(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *TwitterClient) makeRequest(ctx context.Context, method, endpoint string, query url.Values) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	fullURL := c.config.BaseURL + endpoint
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	c.auth.SetAuthHeader(req)

	c.logger.WithFields(logrus.Fields{
		"method": method,
		"url":    fullURL,
	}).Debug("Twitter API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}

	return resp, nil
}
