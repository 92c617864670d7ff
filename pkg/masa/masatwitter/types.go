package masatwitter

import (
	"fmt"
	"net/http"
	"time"
)

// StatusRateLimit is the status code the relay answers with when its
// workers are throttled
const StatusRateLimit = http.StatusTooManyRequests

// Tweet is a scraped tweet as returned by the relay. Field names follow the
// relay's JSON, which is the scraper's Go struct marshaled without tags.
type Tweet struct {
	ConversationID string
	ID             string
	InReplyToID    string `json:"InReplyToStatusID"`
	IsQuoted       bool
	IsReply        bool
	IsRetweet      bool
	Likes          int
	Name           string
	PermanentURL   string
	Replies        int
	Retweets       int
	Text           string
	TimeParsed     time.Time
	Timestamp      int64
	UserID         string
	Username       string
}

// ConnectionError is returned when the relay could not be reached
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("masatwitter: connection failed: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// APIError is returned for any non success status other than rate limiting
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("masatwitter: api error %d: %s", e.StatusCode, e.Message)
}

// RateLimitError is returned when the relay is throttled
type RateLimitError struct {
	RetryAfter time.Duration
	Message    string
}

// NewRateLimitError creates a RateLimitError; message defaults to a generic text
func NewRateLimitError(retryAfter time.Duration, message string) *RateLimitError {
	if message == "" {
		message = "rate limit exceeded"
	}
	return &RateLimitError{
		RetryAfter: retryAfter,
		Message:    message,
	}
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("masatwitter: %s, retry after %s", e.Message, e.RetryAfter)
	}
	return fmt.Sprintf("masatwitter: %s", e.Message)
}
