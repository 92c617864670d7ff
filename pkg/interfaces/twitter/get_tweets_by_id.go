package twitter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
)

// GetTweetByIDParams holds the parameters for the GetTweetByID request
type GetTweetByIDParams struct {
	TweetID string
}

// lookupQuery returns the field selection shared by every read endpoint
func (c *TwitterClient) lookupQuery() url.Values {
	query := url.Values{}
	query.Set("tweet.fields", strings.Join(c.config.GetTweetFields(
		"in_reply_to_user_id",
		"referenced_tweets",
	), ","))
	query.Set("expansions", strings.Join(c.config.GetExpansions(), ","))
	query.Set("user.fields", strings.Join(c.config.UserFields, ","))
	query.Set("media.fields", strings.Join(c.config.MediaFields, ","))
	return query
}

// GetTweetByID retrieves information about a single tweet by its ID
// Rate limit: 300/15m (app), 900/15m (user)
func (c *TwitterClient) GetTweetByID(ctx context.Context, params GetTweetByIDParams) (chan *TweetResponse, chan error) {
	dataChan := make(chan *TweetResponse)
	errChan := make(chan error, 1)

	go func() {
		defer close(dataChan)
		defer close(errChan)

		log := c.logger.WithFields(logrus.Fields{
			"method":   "GetTweetByID",
			"tweet_id": params.TweetID,
		})

		if params.TweetID == "" {
			errChan <- fmt.Errorf("tweet id is required")
			return
		}

		endpoint := fmt.Sprintf("%s/%s", c.config.TweetEndpoint, url.PathEscape(params.TweetID))
		log.WithField("endpoint", endpoint).Debug("Fetching tweet")

		var single SingleTweetResponse
		if err := c.getJSON(ctx, endpoint, c.lookupQuery(), &single); err != nil {
			log.WithError(err).Error("Failed to fetch tweet")
			errChan <- fmt.Errorf("failed to fetch tweet: %w", err)
			return
		}

		tweetResp, err := single.AsList()
		if err != nil {
			log.WithError(err).Error("Failed to unmarshal tweet")
			errChan <- fmt.Errorf("failed to unmarshal tweet: %w", err)
			return
		}

		tweet := tweetResp.Data[0]
		if tweet.ConversationID == "" {
			log.Warn("Tweet response missing conversation_id")
		}

		log.WithFields(logrus.Fields{
			"conversation_id":  tweet.ConversationID,
			"in_reply_to_user": tweet.InReplyToUserID,
		}).Debug("Received tweet response")

		select {
		case dataChan <- tweetResp:
		case <-ctx.Done():
			errChan <- ctx.Err()
		}
	}()

	return dataChan, errChan
}
