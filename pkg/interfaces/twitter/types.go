package twitter

import (
	"encoding/json"
	"fmt"
)

// TweetURL is a URL entity of a tweet
type TweetURL struct {
	Start       int    `json:"start"`
	End         int    `json:"end"`
	URL         string `json:"url"`
	ExpandedURL string `json:"expanded_url"`
	DisplayURL  string `json:"display_url"`
	MediaKey    string `json:"media_key,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	UnwoundURL  string `json:"unwound_url,omitempty"`
}

// Tweet represents a Twitter post with the v2 API fields twindle requests
type Tweet struct {
	// Required fields
	ID   string `json:"id"`
	Text string `json:"text"`

	// Optional fields
	Attachments struct {
		MediaKeys []string `json:"media_keys,omitempty"`
	} `json:"attachments,omitempty"`
	AuthorID       string `json:"author_id,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`
	Entities       struct {
		Hashtags []struct {
			Start int    `json:"start"`
			End   int    `json:"end"`
			Tag   string `json:"tag"`
		} `json:"hashtags,omitempty"`
		Mentions []struct {
			Start    int    `json:"start"`
			End      int    `json:"end"`
			Username string `json:"username"`
			ID       string `json:"id"`
		} `json:"mentions,omitempty"`
		URLs []TweetURL `json:"urls,omitempty"`
	} `json:"entities,omitempty"`
	InReplyToUserID string `json:"in_reply_to_user_id,omitempty"`
	PublicMetrics   struct {
		RetweetCount int `json:"retweet_count"`
		ReplyCount   int `json:"reply_count"`
		LikeCount    int `json:"like_count"`
		QuoteCount   int `json:"quote_count"`
	} `json:"public_metrics,omitempty"`
	ReferencedTweets []struct {
		Type string `json:"type"` // "retweeted" or "quoted" or "replied_to"
		ID   string `json:"id"`
	} `json:"referenced_tweets,omitempty"`
}

// TweetResponse represents the Twitter API response format for list endpoints
type TweetResponse struct {
	Data     []Tweet        `json:"data"`
	Includes *TweetIncludes `json:"includes,omitempty"`
	Errors   []TwitterError `json:"errors,omitempty"`
	Meta     *Meta          `json:"meta,omitempty"`
}

// SingleTweetResponse is the lookup response for one tweet, where data is an
// object instead of an array
type SingleTweetResponse struct {
	Data     json.RawMessage `json:"data"`
	Includes *TweetIncludes  `json:"includes,omitempty"`
	Errors   []TwitterError  `json:"errors,omitempty"`
}

// UnmarshalTweet decodes the data object. It fails when the tweet was not
// returned, which the API signals with errors and no data.
func (r *SingleTweetResponse) UnmarshalTweet() (*Tweet, error) {
	if len(r.Data) == 0 || string(r.Data) == "null" {
		if len(r.Errors) > 0 {
			return nil, &r.Errors[0]
		}
		return nil, fmt.Errorf("response contains no tweet")
	}

	var tweet Tweet
	if err := json.Unmarshal(r.Data, &tweet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tweet: %w", err)
	}
	return &tweet, nil
}

// AsList converts a single tweet lookup into the list response shape
func (r *SingleTweetResponse) AsList() (*TweetResponse, error) {
	tweet, err := r.UnmarshalTweet()
	if err != nil {
		return nil, err
	}
	return &TweetResponse{
		Data:     []Tweet{*tweet},
		Includes: r.Includes,
		Meta:     &Meta{ResultCount: 1},
	}, nil
}

// TweetIncludes contains the expanded objects in the response
type TweetIncludes struct {
	Users  []User  `json:"users,omitempty"`
	Tweets []Tweet `json:"tweets,omitempty"`
	Media  []Media `json:"media,omitempty"`
}

// TwitterError represents an error returned by the Twitter API, either a
// legacy {code,message} pair or a v2 problem object
type TwitterError struct {
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Title   string `json:"title,omitempty"`
	Detail  string `json:"detail,omitempty"`
	Type    string `json:"type,omitempty"`
	Value   string `json:"value,omitempty"`
}

func (e *TwitterError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("Twitter API error: %s: %s", e.Title, e.Detail)
	}
	return fmt.Sprintf("Twitter API error %d: %s", e.Code, e.Message)
}

// User represents a Twitter user object
type User struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Username        string `json:"username"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
	Verified        bool   `json:"verified,omitempty"`
}

// Media represents a media object attached to a Tweet
type Media struct {
	MediaKey        string `json:"media_key"`
	Type            string `json:"type"` // "animated_gif", "photo", "video"
	URL             string `json:"url,omitempty"`
	PreviewImageURL string `json:"preview_image_url,omitempty"`
	AltText         string `json:"alt_text,omitempty"`
}

// Meta contains information about the response
type Meta struct {
	ResultCount int    `json:"result_count,omitempty"`
	NextToken   string `json:"next_token,omitempty"`
	NewestID    string `json:"newest_id,omitempty"`
	OldestID    string `json:"oldest_id,omitempty"`
}

// nextToken is nil safe; the API omits meta on lookups
func (r *TweetResponse) nextToken() string {
	if r == nil || r.Meta == nil {
		return ""
	}
	return r.Meta.NextToken
}
