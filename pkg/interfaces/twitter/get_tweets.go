package twitter

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// MaxIDsPerLookup is the most IDs the multi-tweet lookup accepts per request
const MaxIDsPerLookup = 100

// GetTweetsParams holds the parameters for the GetTweets request
type GetTweetsParams struct {
	TweetIDs []string // List of tweet IDs to fetch
}

// GetTweets retrieves information about specific tweets by their IDs. The IDs
// are split into chunks of MaxIDsPerLookup and one response is sent per chunk.
// Rate limit: 300/15m (app), 900/15m (user)
func (c *TwitterClient) GetTweets(ctx context.Context, params GetTweetsParams) (chan *TweetResponse, chan error) {
	dataChan := make(chan *TweetResponse)
	errChan := make(chan error, 1)

	go func() {
		defer close(dataChan)
		defer close(errChan)

		log := c.logger.WithFields(logrus.Fields{
			"method":     "GetTweets",
			"num_tweets": len(params.TweetIDs),
		})

		endpoint := c.config.TweetEndpoint

		for start := 0; start < len(params.TweetIDs); start += MaxIDsPerLookup {
			end := start + MaxIDsPerLookup
			if end > len(params.TweetIDs) {
				end = len(params.TweetIDs)
			}
			chunk := params.TweetIDs[start:end]

			query := c.lookupQuery()
			query.Set("ids", strings.Join(chunk, ","))

			log.WithFields(logrus.Fields{
				"endpoint":   endpoint,
				"chunk_size": len(chunk),
				"offset":     start,
			}).Debug("Fetching tweets")

			var tweetResp TweetResponse
			if err := c.getJSON(ctx, endpoint, query, &tweetResp); err != nil {
				log.WithError(err).Error("Failed to fetch tweets")
				errChan <- fmt.Errorf("failed to fetch tweets: %w", err)
				return
			}

			// Unknown or deleted IDs come back as partial errors next to data
			for _, apiErr := range tweetResp.Errors {
				log.WithFields(logrus.Fields{
					"value":  apiErr.Value,
					"detail": apiErr.Detail,
				}).Warn("Tweet not returned")
			}

			log.WithField("tweets_received", len(tweetResp.Data)).Debug("Received tweets response")

			select {
			case dataChan <- &tweetResp:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}
	}()

	return dataChan, errChan
}
