package render

import (
	"fmt"
	"strings"

	"github.com/lisanmuaddib/twindle/pkg/tweets"
)

// document is the view model shared by every writer
type document struct {
	Title     string
	Author    string
	Username  string
	CreatedAt string
	Count     int
	Meta      string
	Tweets    []tweets.Tweet
}

func newDocument(c *tweets.Collection) document {
	doc := document{
		Username:  c.Username(),
		CreatedAt: c.CreatedAt(),
		Count:     c.Len(),
		Tweets:    c.Data,
	}
	if c.Common != nil && c.Common.User != nil {
		doc.Author = c.Common.User.Name
	}
	if doc.Author == "" {
		doc.Author = doc.Username
	}

	switch {
	case doc.Username != "":
		doc.Title = "Thread by " + doc.Username
	default:
		doc.Title = "Twindle thread"
	}

	var meta []string
	if doc.Author != "" && doc.Author != doc.Username {
		meta = append(meta, doc.Author)
	}
	for _, part := range []string{doc.Username, doc.CreatedAt, fmt.Sprintf("%d tweets", doc.Count)} {
		if part != "" {
			meta = append(meta, part)
		}
	}
	doc.Meta = strings.Join(meta, " · ")
	return doc
}

// paragraphs splits tweet text into its non-empty lines
func paragraphs(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

// linkTarget prefers the expanded URL of a link entity
func linkTarget(l tweets.Link) string {
	if l.ExpandedURL != "" {
		return l.ExpandedURL
	}
	return l.URL
}

// linkLabel prefers the page title, then the display URL
func linkLabel(l tweets.Link) string {
	switch {
	case l.Title != "":
		return l.Title
	case l.DisplayURL != "":
		return l.DisplayURL
	default:
		return linkTarget(l)
	}
}
