package scraping

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

// maxPageSize bounds how much of a conversation page is parsed
const maxPageSize = 4 << 20

var statusPath = regexp.MustCompile(`/status/(\d+)`)

// NitterResolver reads thread IDs from the conversation page of a Nitter
// instance. The page lists the thread above and below the focused tweet in
// its main thread block.
type NitterResolver struct {
	baseURL   string
	userAgent string
	client    *http.Client
	logger    *logrus.Logger
}

// NewNitterResolver creates a resolver for the instance in config
func NewNitterResolver(config *Config) (*NitterResolver, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &NitterResolver{
		baseURL:   config.NitterBaseURL,
		userAgent: config.UserAgent,
		client:    &http.Client{Timeout: config.Timeout},
		logger:    config.Logger,
	}, nil
}

// ResolveThreadIDs returns the IDs of the focused tweet's author in the main
// thread, in page order, which is oldest first
func (r *NitterResolver) ResolveThreadIDs(ctx context.Context, tweetID string) ([]string, error) {
	pageURL := fmt.Sprintf("%s/i/status/%s", r.baseURL, url.PathEscape(tweetID))
	log := r.logger.WithFields(logrus.Fields{
		"tweet_id": tweetID,
		"url":      pageURL,
	})

	doc, err := r.fetch(ctx, pageURL)
	if err != nil {
		log.WithError(err).Error("Failed to fetch conversation page")
		return nil, err
	}

	ids := ThreadIDsFromDocument(doc, tweetID)
	log.WithField("thread_length", len(ids)).Debug("Scraped thread ids")
	return ids, nil
}

func (r *NitterResolver) fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET conversation page %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET conversation page %s: status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return nil, fmt.Errorf("parse conversation page html: %w", err)
	}
	return doc, nil
}

// ThreadIDsFromDocument extracts the thread of the focused tweet's author from
// a parsed conversation page. tweetID is always part of the result.
func ThreadIDsFromDocument(doc *goquery.Document, tweetID string) []string {
	author := handle(doc.Find(".main-tweet .username").First())

	seen := map[string]bool{}
	var ids []string
	doc.Find(".main-thread .timeline-item").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Find("a.tweet-link").First().Attr("href")
		m := statusPath.FindStringSubmatch(href)
		if m == nil {
			return
		}
		id := m[1]
		if seen[id] {
			return
		}
		if author != "" && handle(s.Find(".username").First()) != author {
			return
		}
		seen[id] = true
		ids = append(ids, id)
	})

	if !seen[tweetID] {
		ids = append([]string{tweetID}, ids...)
	}
	return ids
}

func handle(s *goquery.Selection) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s.Text()), "@"))
}
