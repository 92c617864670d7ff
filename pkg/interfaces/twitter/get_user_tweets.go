package twitter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Page size bounds of the user timeline endpoint
const (
	minTimelinePage = 5
	maxTimelinePage = 100
)

// GetUserTweetsParams holds the parameters for the GetUserTweets request
type GetUserTweetsParams struct {
	UserID          string
	PaginationToken string
	// Limit stops pagination once this many tweets were sent. Zero means one page.
	Limit int
}

func timelinePageSize(limit int) int {
	switch {
	case limit < minTimelinePage:
		return minTimelinePage
	case limit > maxTimelinePage:
		return maxTimelinePage
	default:
		return limit
	}
}

// GetUserTweets retrieves tweets posted by a specific user, newest first
// Rate limit: 1500/15m (app), 900/15m (user)
func (c *TwitterClient) GetUserTweets(ctx context.Context, params GetUserTweetsParams) (chan *TweetResponse, chan error) {
	dataChan := make(chan *TweetResponse)
	errChan := make(chan error, 1)

	go func() {
		defer close(dataChan)
		defer close(errChan)

		log := c.logger.WithFields(logrus.Fields{
			"method":  "GetUserTweets",
			"user_id": params.UserID,
			"limit":   params.Limit,
		})

		if params.UserID == "" {
			errChan <- fmt.Errorf("user id is required")
			return
		}

		endpoint := fmt.Sprintf("%s/%s/tweets", c.config.UserEndpoint, url.PathEscape(params.UserID))
		received := 0

		for {
			query := c.lookupQuery()
			query.Set("max_results", strconv.Itoa(timelinePageSize(params.Limit-received)))
			if params.PaginationToken != "" {
				query.Set("pagination_token", params.PaginationToken)
			}

			log.WithField("endpoint", endpoint).Debug("Fetching user tweets")

			var tweetResp TweetResponse
			if err := c.getJSON(ctx, endpoint, query, &tweetResp); err != nil {
				log.WithError(err).Error("Failed to fetch user tweets")
				errChan <- fmt.Errorf("failed to fetch user tweets: %w", err)
				return
			}

			select {
			case dataChan <- &tweetResp:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
			received += len(tweetResp.Data)

			// Check if we have more pages
			if tweetResp.nextToken() == "" || received >= params.Limit {
				log.WithField("received", received).Debug("No more pages to fetch")
				return
			}

			// Update pagination token for next request
			params.PaginationToken = tweetResp.nextToken()
			log.WithField("next_token", params.PaginationToken).Debug("Fetching next page")
		}
	}()

	return dataChan, errChan
}
