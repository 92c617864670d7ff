package twitter

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
)

// GetConversationParams holds the parameters for retrieving a conversation thread
type GetConversationParams struct {
	ConversationID string
	// Author restricts the search to one user's replies, which is how a
	// thread is told apart from the rest of the conversation
	Author          string
	PaginationToken string
	Limit           int
}

// ConversationQuery builds the recent search query for a thread
func ConversationQuery(conversationID, author string) string {
	query := fmt.Sprintf("conversation_id:%s", conversationID)
	if author != "" {
		query += fmt.Sprintf(" from:%s", author)
	}
	return query
}

// GetConversation retrieves the tweets of a conversation thread by conversation_id.
// Only the last seven days are searchable.
// Rate limit: 450/15m (app), 180/15m (user)
func (c *TwitterClient) GetConversation(ctx context.Context, params GetConversationParams) (chan *TweetResponse, chan error) {
	dataChan := make(chan *TweetResponse)
	errChan := make(chan error, 1)

	go func() {
		defer close(dataChan)
		defer close(errChan)

		log := c.logger.WithFields(logrus.Fields{
			"method":          "GetConversation",
			"conversation_id": params.ConversationID,
			"author":          params.Author,
		})

		endpoint := c.config.SearchEndpoint
		search := ConversationQuery(params.ConversationID, params.Author)
		received := 0

		for {
			query := c.lookupQuery()
			query.Set("query", search)
			query.Set("max_results", strconv.Itoa(searchPageSize(params.Limit-received)))
			if params.PaginationToken != "" {
				query.Set("next_token", params.PaginationToken)
			}

			log.WithFields(logrus.Fields{
				"endpoint": endpoint,
				"query":    search,
			}).Debug("Fetching conversation tweets")

			var conversationResp TweetResponse
			if err := c.getJSON(ctx, endpoint, query, &conversationResp); err != nil {
				log.WithError(err).Error("Failed to fetch conversation")
				errChan <- fmt.Errorf("failed to fetch conversation: %w", err)
				return
			}

			log.WithField("tweets_found", len(conversationResp.Data)).Debug("Received conversation response")

			select {
			case dataChan <- &conversationResp:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
			received += len(conversationResp.Data)

			// Check if we have more pages
			if conversationResp.nextToken() == "" || (params.Limit > 0 && received >= params.Limit) {
				log.Debug("No more pages to fetch")
				return
			}

			// Update pagination token for next request
			params.PaginationToken = conversationResp.nextToken()
			log.WithField("next_token", params.PaginationToken).Debug("Fetching next page")
		}
	}()

	return dataChan, errChan
}

// recent search accepts 10..100 per page
func searchPageSize(remaining int) int {
	switch {
	case remaining <= 0 || remaining > 100:
		return 100
	case remaining < 10:
		return 10
	default:
		return remaining
	}
}
