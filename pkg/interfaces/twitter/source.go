package twitter

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/lisanmuaddib/twindle/pkg/tweets"
)

// Source fetches tweets through the v2 API and returns them as normalized
// collections
type Source struct {
	client *TwitterClient
	logger *logrus.Logger
}

// NewSource wraps a client
func NewSource(client *TwitterClient) *Source {
	return &Source{
		client: client,
		logger: client.logger,
	}
}

// TweetsByID returns the tweet and the rest of its author's thread, oldest
// first. Only the author's own tweets of the conversation are kept.
func (s *Source) TweetsByID(ctx context.Context, tweetID string) (*tweets.Collection, error) {
	log := s.logger.WithFields(logrus.Fields{
		"method":   "TweetsByID",
		"tweet_id": tweetID,
	})

	rootResponses, err := collect(s.client.GetTweetByID(ctx, GetTweetByIDParams{TweetID: tweetID}))
	if err != nil {
		return nil, err
	}
	if len(rootResponses) == 0 || len(rootResponses[0].Data) == 0 {
		return nil, fmt.Errorf("tweet %s not found", tweetID)
	}
	root := rootResponses[0].Data[0]
	responses := append([]*TweetResponse{}, rootResponses...)
	thread := []Tweet{root}

	author := newIndex(rootResponses).users[root.AuthorID]
	if root.ConversationID != "" && author.Username != "" {
		if root.ConversationID != root.ID {
			head, err := collect(s.client.GetTweetByID(ctx, GetTweetByIDParams{TweetID: root.ConversationID}))
			if err != nil {
				log.WithError(err).Warn("Failed to fetch conversation head")
			} else {
				responses = append(responses, head...)
				for _, resp := range head {
					thread = append(thread, resp.Data...)
				}
			}
		}

		pages, err := collect(s.client.GetConversation(ctx, GetConversationParams{
			ConversationID: root.ConversationID,
			Author:         author.Username,
		}))
		if err != nil {
			return nil, err
		}
		responses = append(responses, pages...)
		for _, page := range pages {
			thread = append(thread, page.Data...)
		}
	}

	thread = sameAuthor(dedupe(thread), root.AuthorID)
	sortByID(thread)

	log.WithField("thread_length", len(thread)).Debug("Fetched thread")
	return toCollection(thread, responses), nil
}

// TweetsByIDs returns the tweets in the order the IDs were given. IDs the
// API does not return are skipped.
func (s *Source) TweetsByIDs(ctx context.Context, tweetIDs []string) (*tweets.Collection, error) {
	if len(tweetIDs) == 0 {
		return nil, fmt.Errorf("no tweet ids to fetch")
	}

	responses, err := collect(s.client.GetTweets(ctx, GetTweetsParams{TweetIDs: tweetIDs}))
	if err != nil {
		return nil, err
	}

	byID := map[string]Tweet{}
	for _, resp := range responses {
		for _, t := range resp.Data {
			byID[t.ID] = t
		}
	}

	ordered := make([]Tweet, 0, len(tweetIDs))
	for _, id := range tweetIDs {
		if t, ok := byID[id]; ok {
			ordered = append(ordered, t)
		}
	}
	if len(ordered) == 0 {
		return nil, fmt.Errorf("none of the %d tweets were returned", len(tweetIDs))
	}

	s.logger.WithFields(logrus.Fields{
		"method":    "TweetsByIDs",
		"requested": len(tweetIDs),
		"returned":  len(ordered),
	}).Debug("Fetched tweets")
	return toCollection(ordered, responses), nil
}

// TweetsByUser returns up to limit of the user's most recent tweets
func (s *Source) TweetsByUser(ctx context.Context, userID string, limit int) (*tweets.Collection, error) {
	responses, err := collect(s.client.GetUserTweets(ctx, GetUserTweetsParams{
		UserID: userID,
		Limit:  limit,
	}))
	if err != nil {
		return nil, err
	}

	var data []Tweet
	for _, resp := range responses {
		data = append(data, resp.Data...)
	}
	if limit > 0 && len(data) > limit {
		data = data[:limit]
	}

	s.logger.WithFields(logrus.Fields{
		"method":   "TweetsByUser",
		"user_id":  userID,
		"returned": len(data),
	}).Debug("Fetched user tweets")
	return toCollection(data, responses), nil
}

func dedupe(in []Tweet) []Tweet {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, t := range in {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}

func sameAuthor(in []Tweet, authorID string) []Tweet {
	if authorID == "" {
		return in
	}
	out := in[:0]
	for _, t := range in {
		if t.AuthorID == authorID {
			out = append(out, t)
		}
	}
	return out
}

// sortByID orders tweets oldest first; snowflake IDs grow with time
func sortByID(in []Tweet) {
	sort.SliceStable(in, func(i, j int) bool {
		a, errA := strconv.ParseUint(in[i].ID, 10, 64)
		b, errB := strconv.ParseUint(in[j].ID, 10, 64)
		if errA != nil || errB != nil {
			return in[i].ID < in[j].ID
		}
		return a < b
	})
}
