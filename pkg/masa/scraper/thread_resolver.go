// Package scraper resolves thread IDs through the Masa protocol relay, which
// scrapes Twitter search results without API credentials.
package scraper

import (
	"context"
	"fmt"

	"github.com/lisanmuaddib/twindle/pkg/masa/masatwitter"
	"github.com/sirupsen/logrus"
)

// Searcher runs a search on the relay
type Searcher interface {
	Search(ctx context.Context, query string) ([]masatwitter.Tweet, error)
}

// ThreadResolver finds the tweets of a thread with a conversation search
type ThreadResolver struct {
	client    Searcher
	logger    *logrus.Logger
	processor *TweetProcessor
}

// NewThreadResolver creates a ThreadResolver
func NewThreadResolver(client Searcher, logger *logrus.Logger) *ThreadResolver {
	if logger == nil {
		logger = logrus.New()
	}
	return &ThreadResolver{
		client:    client,
		logger:    logger,
		processor: NewTweetProcessor(logger),
	}
}

// ResolveThreadIDs returns the IDs of the author's tweets in the conversation
// started by tweetID, oldest first. When the search finds nothing the thread
// is the tweet alone.
func (r *ThreadResolver) ResolveThreadIDs(ctx context.Context, tweetID string) ([]string, error) {
	log := r.logger.WithField("tweet_id", tweetID)

	batch, err := r.client.Search(ctx, conversationQuery(tweetID))
	if err != nil {
		log.WithError(err).Error("Conversation search failed")
		return nil, fmt.Errorf("failed to search conversation %s: %w", tweetID, err)
	}

	log.WithField("batch_size", len(batch)).Debug("Conversation search finished")

	return r.processor.ThreadIDs(batch, tweetID, tweetID), nil
}

func conversationQuery(id string) string {
	return fmt.Sprintf("conversation_id:%s", id)
}
