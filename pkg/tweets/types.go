// Package tweets holds the normalized tweet collection every source produces
// and every renderer consumes.
package tweets

// HumanTimeLayout is the layout used for the human readable created_at strings
// stored on tweets and on the collection's common block.
const HumanTimeLayout = "Jan 2, 2006 15:04"

// User is the author shared by the tweets of a collection
type User struct {
	ID              string `json:"id,omitempty"`
	Name            string `json:"name,omitempty"`
	Username        string `json:"username,omitempty"` // "@handle"
	ProfileImageURL string `json:"profile_image_url,omitempty"`
	Verified        bool   `json:"verified,omitempty"`
}

// Media is a photo, video or gif attached to a tweet
type Media struct {
	Type    string `json:"type"`
	URL     string `json:"url"`
	AltText string `json:"alt_text,omitempty"`
}

// Link is an expanded URL entity of a tweet
type Link struct {
	URL         string `json:"url"`
	ExpandedURL string `json:"expanded_url,omitempty"`
	DisplayURL  string `json:"display_url,omitempty"`
	Title       string `json:"title,omitempty"`
}

// Metrics are the public engagement counters of a tweet
type Metrics struct {
	Likes    int `json:"likes"`
	Retweets int `json:"retweets"`
	Replies  int `json:"replies"`
	Quotes   int `json:"quotes"`
}

// Tweet is a single normalized tweet record
type Tweet struct {
	ID             string  `json:"id"`
	Text           string  `json:"text"`
	CreatedAt      string  `json:"created_at,omitempty"`
	ConversationID string  `json:"conversation_id,omitempty"`
	AuthorID       string  `json:"author_id,omitempty"`
	Media          []Media `json:"media,omitempty"`
	Links          []Link  `json:"links,omitempty"`
	Metrics        Metrics `json:"metrics"`
}

// Common is the metadata block shared by the whole collection
type Common struct {
	User      *User  `json:"user,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	Count     int    `json:"count"`
}

// Collection is an ordered list of tweets plus their common metadata.
// Common.Count always equals len(Data) once the collection leaves a source.
type Collection struct {
	Data   []Tweet `json:"data"`
	Common *Common `json:"common,omitempty"`
}

// NewCollection builds a collection and sets the count to match data
func NewCollection(data []Tweet, user *User, createdAt string) *Collection {
	return &Collection{
		Data: data,
		Common: &Common{
			User:      user,
			CreatedAt: createdAt,
			Count:     len(data),
		},
	}
}

// Truncate keeps at most max tweets and recomputes the count.
// Collections at or under max are left untouched.
func (c *Collection) Truncate(max int) {
	if c == nil || max < 0 || len(c.Data) <= max {
		return
	}
	c.Data = c.Data[:max]
	if c.Common == nil {
		c.Common = &Common{}
	}
	c.Common.Count = len(c.Data)
}

// Username returns the author handle or "" when the metadata is missing
func (c *Collection) Username() string {
	if c == nil || c.Common == nil || c.Common.User == nil {
		return ""
	}
	return c.Common.User.Username
}

// CreatedAt returns the human readable creation time or ""
func (c *Collection) CreatedAt() string {
	if c == nil || c.Common == nil {
		return ""
	}
	return c.Common.CreatedAt
}

// Len returns the number of tweets, nil safe
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Data)
}
