package scraper

import (
	"sort"
	"time"

	"github.com/lisanmuaddib/twindle/pkg/masa/masatwitter"
	"github.com/sirupsen/logrus"
)

// TweetProcessor turns a batch of scraped conversation tweets into the
// ordered thread of one author
type TweetProcessor struct {
	logger *logrus.Logger
}

// NewTweetProcessor creates a new TweetProcessor instance
func NewTweetProcessor(logger *logrus.Logger) *TweetProcessor {
	return &TweetProcessor{
		logger: logger,
	}
}

// authorOf returns the user ID of the tweet, falling back to the author of
// the conversation head when the tweet is not part of the batch
func authorOf(tweets []masatwitter.Tweet, tweetID, conversationID string) string {
	var head string
	for _, t := range tweets {
		if t.ID == tweetID {
			return t.UserID
		}
		if t.ID == conversationID {
			head = t.UserID
		}
	}
	return head
}

// ThreadIDs keeps the tweets written by the author of tweetID, dedupes them
// and orders them oldest first. tweetID itself is always part of the result;
// when the batch lacks it, it leads the thread.
func (p *TweetProcessor) ThreadIDs(tweets []masatwitter.Tweet, tweetID, conversationID string) []string {
	author := authorOf(tweets, tweetID, conversationID)
	if author == "" {
		// without the author, replies from others cannot be told apart
		p.logger.WithField("tweet_id", tweetID).Debug("Thread author unknown, keeping the tweet alone")
		return []string{tweetID}
	}

	seen := map[string]bool{}
	var thread []masatwitter.Tweet
	for _, t := range tweets {
		if seen[t.ID] || t.UserID != author || t.IsRetweet {
			continue
		}
		seen[t.ID] = true
		thread = append(thread, t)
	}

	sort.SliceStable(thread, func(i, j int) bool {
		return tweetTime(thread[i]).Before(tweetTime(thread[j]))
	})

	ids := make([]string, 0, len(thread)+1)
	if !seen[tweetID] {
		ids = append(ids, tweetID)
	}
	for _, t := range thread {
		ids = append(ids, t.ID)
	}

	p.logger.WithFields(logrus.Fields{
		"tweet_id":        tweetID,
		"conversation_id": conversationID,
		"author_id":       author,
		"batch_size":      len(tweets),
		"thread_length":   len(ids),
	}).Debug("Processed conversation batch")

	return ids
}

func tweetTime(t masatwitter.Tweet) time.Time {
	if !t.TimeParsed.IsZero() {
		return t.TimeParsed
	}
	return time.Unix(t.Timestamp, 0)
}
