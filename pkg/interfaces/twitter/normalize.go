package twitter

import (
	"html"
	"strings"
	"time"

	"github.com/lisanmuaddib/twindle/pkg/tweets"
)

// humanTime renders an API timestamp the way collections store it. Values
// that do not parse are kept as they are.
func humanTime(raw string) string {
	if raw == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.UTC().Format(tweets.HumanTimeLayout)
}

// index holds the expansions of one or more responses
type index struct {
	users map[string]User
	media map[string]Media
}

func newIndex(responses []*TweetResponse) *index {
	idx := &index{
		users: map[string]User{},
		media: map[string]Media{},
	}
	for _, resp := range responses {
		if resp == nil || resp.Includes == nil {
			continue
		}
		for _, u := range resp.Includes.Users {
			idx.users[u.ID] = u
		}
		for _, m := range resp.Includes.Media {
			idx.media[m.MediaKey] = m
		}
	}
	return idx
}

func (idx *index) user(id string) *tweets.User {
	u, ok := idx.users[id]
	if !ok {
		return nil
	}
	return &tweets.User{
		ID:              u.ID,
		Name:            u.Name,
		Username:        "@" + u.Username,
		ProfileImageURL: u.ProfileImageURL,
		Verified:        u.Verified,
	}
}

// normalizeTweet converts an API tweet. The t.co links that only point at
// attached media are removed from the text, the rest become Links.
func (idx *index) normalizeTweet(t Tweet) tweets.Tweet {
	text := t.Text
	var links []tweets.Link
	for _, u := range t.Entities.URLs {
		if u.MediaKey != "" {
			text = strings.Replace(text, u.URL, "", 1)
			continue
		}
		links = append(links, tweets.Link{
			URL:         u.URL,
			ExpandedURL: u.ExpandedURL,
			DisplayURL:  u.DisplayURL,
			Title:       u.Title,
		})
	}

	var media []tweets.Media
	for _, key := range t.Attachments.MediaKeys {
		m, ok := idx.media[key]
		if !ok {
			continue
		}
		mediaURL := m.URL
		if mediaURL == "" {
			mediaURL = m.PreviewImageURL
		}
		media = append(media, tweets.Media{
			Type:    m.Type,
			URL:     mediaURL,
			AltText: m.AltText,
		})
	}

	return tweets.Tweet{
		ID:             t.ID,
		Text:           strings.TrimSpace(html.UnescapeString(text)),
		CreatedAt:      humanTime(t.CreatedAt),
		ConversationID: t.ConversationID,
		AuthorID:       t.AuthorID,
		Media:          media,
		Links:          links,
		Metrics: tweets.Metrics{
			Likes:    t.PublicMetrics.LikeCount,
			Retweets: t.PublicMetrics.RetweetCount,
			Replies:  t.PublicMetrics.ReplyCount,
			Quotes:   t.PublicMetrics.QuoteCount,
		},
	}
}

// toCollection normalizes ordered API tweets. The common block takes the
// author and creation time of the first tweet.
func toCollection(data []Tweet, responses []*TweetResponse) *tweets.Collection {
	idx := newIndex(responses)

	out := make([]tweets.Tweet, 0, len(data))
	for _, t := range data {
		out = append(out, idx.normalizeTweet(t))
	}

	var user *tweets.User
	createdAt := ""
	if len(out) > 0 {
		user = idx.user(out[0].AuthorID)
		createdAt = out[0].CreatedAt
	}
	return tweets.NewCollection(out, user, createdAt)
}
