package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type fakeAPI struct {
	mu       sync.Mutex
	requests []*http.Request
	tweets   map[string]map[string]interface{}
	search   []map[string]interface{}
	timeline [][]map[string]interface{}
}

func apiTweet(id, author, conversation, text string) map[string]interface{} {
	return map[string]interface{}{
		"id":              id,
		"text":            text,
		"author_id":       author,
		"conversation_id": conversation,
		"created_at":      "2024-01-01T10:00:00.000Z",
	}
}

var includes = map[string]interface{}{
	"users": []map[string]interface{}{
		{"id": "1", "name": "Alice", "username": "alice"},
		{"id": "2", "name": "Bob", "username": "bob"},
	},
}

func (f *fakeAPI) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r)
	f.mu.Unlock()

	switch {
	case r.URL.Path == "/tweets/search/recent":
		f.writeJSON(w, map[string]interface{}{
			"data":     f.search,
			"includes": includes,
			"meta":     map[string]interface{}{"result_count": len(f.search)},
		})

	case strings.HasPrefix(r.URL.Path, "/tweets/"):
		id := strings.TrimPrefix(r.URL.Path, "/tweets/")
		t, ok := f.tweets[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			f.writeJSON(w, map[string]interface{}{
				"title":  "Not Found Error",
				"detail": fmt.Sprintf("Could not find tweet with id: [%s].", id),
			})
			return
		}
		f.writeJSON(w, map[string]interface{}{"data": t, "includes": includes})

	case r.URL.Path == "/tweets":
		var data []map[string]interface{}
		for _, id := range strings.Split(r.URL.Query().Get("ids"), ",") {
			if t, ok := f.tweets[id]; ok {
				data = append(data, t)
			}
		}
		f.writeJSON(w, map[string]interface{}{"data": data, "includes": includes})

	case strings.HasPrefix(r.URL.Path, "/users/"):
		page := 0
		if token := r.URL.Query().Get("pagination_token"); token != "" {
			fmt.Sscanf(token, "page-%d", &page)
		}
		meta := map[string]interface{}{}
		if page+1 < len(f.timeline) {
			meta["next_token"] = fmt.Sprintf("page-%d", page+1)
		}
		f.writeJSON(w, map[string]interface{}{
			"data":     f.timeline[page],
			"includes": includes,
			"meta":     meta,
		})

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeAPI) paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, r := range f.requests {
		out = append(out, r.URL.Path)
	}
	return out
}

var _ = Describe("Source", func() {
	var (
		api    *fakeAPI
		server *httptest.Server
		source *Source
		ctx    context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		api = &fakeAPI{tweets: map[string]map[string]interface{}{}}
		server = httptest.NewServer(api)
		DeferCleanup(server.Close)

		logger := logrus.New()
		logger.SetOutput(GinkgoWriter)

		config := &TwitterConfig{
			BearerToken: "token",
			BaseURL:     server.URL,
			RateLimit:   300,
			RateWindow:  15,
			Logger:      logger,
		}
		client, err := NewTwitterClient(config,
			WithHTTPClient(server.Client()),
			WithLimiter(rate.NewLimiter(rate.Inf, 1)),
		)
		Expect(err).NotTo(HaveOccurred())
		source = NewSource(client)
	})

	Context("TweetsByID", func() {
		BeforeEach(func() {
			api.tweets["100"] = apiTweet("100", "1", "100", "first &amp; foremost")
			api.tweets["102"] = apiTweet("102", "1", "100", "middle")
			api.search = []map[string]interface{}{
				apiTweet("103", "1", "100", "last"),
				apiTweet("102", "1", "100", "middle"),
				apiTweet("101", "2", "100", "a reply from someone else"),
			}
		})

		It("returns the author's thread oldest first", func() {
			c, err := source.TweetsByID(ctx, "102")
			Expect(err).NotTo(HaveOccurred())

			var ids []string
			for _, t := range c.Data {
				ids = append(ids, t.ID)
			}
			Expect(ids).To(Equal([]string{"100", "102", "103"}))
			Expect(c.Common.Count).To(Equal(3))
			Expect(c.Username()).To(Equal("@alice"))
			Expect(c.CreatedAt()).To(Equal("Jan 1, 2024 10:00"))
			Expect(c.Data[0].Text).To(Equal("first & foremost"))
		})

		It("sends the bearer token and restricts the search to the author", func() {
			_, err := source.TweetsByID(ctx, "100")
			Expect(err).NotTo(HaveOccurred())

			for _, r := range api.requests {
				Expect(r.Header.Get("Authorization")).To(Equal("Bearer token"))
				Expect(r.Method).To(Equal(http.MethodGet))
			}
			last := api.requests[len(api.requests)-1]
			Expect(last.URL.Path).To(Equal("/tweets/search/recent"))
			Expect(last.URL.Query().Get("query")).To(Equal("conversation_id:100 from:alice"))
		})

		It("does not fetch the head again when the tweet starts the thread", func() {
			_, err := source.TweetsByID(ctx, "100")
			Expect(err).NotTo(HaveOccurred())
			Expect(api.paths()).To(Equal([]string{"/tweets/100", "/tweets/search/recent"}))
		})

		It("fails for an unknown tweet", func() {
			_, err := source.TweetsByID(ctx, "999")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("Could not find tweet"))
		})
	})

	Context("TweetsByIDs", func() {
		It("keeps the requested order and skips missing tweets", func() {
			api.tweets["5"] = apiTweet("5", "1", "5", "five")
			api.tweets["3"] = apiTweet("3", "1", "3", "three")

			c, err := source.TweetsByIDs(ctx, []string{"5", "4", "3"})
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Len()).To(Equal(2))
			Expect(c.Data[0].ID).To(Equal("5"))
			Expect(c.Data[1].ID).To(Equal("3"))
		})

		It("splits large batches into lookups of 100", func() {
			ids := make([]string, 0, 250)
			for i := 0; i < 250; i++ {
				id := fmt.Sprintf("%d", 1000+i)
				ids = append(ids, id)
				api.tweets[id] = apiTweet(id, "1", "1000", "t")
			}

			c, err := source.TweetsByIDs(ctx, ids)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Len()).To(Equal(250))
			Expect(api.paths()).To(HaveLen(3))
			Expect(strings.Split(api.requests[2].URL.Query().Get("ids"), ",")).To(HaveLen(50))
		})

		It("fails when nothing is returned", func() {
			_, err := source.TweetsByIDs(ctx, []string{"1"})
			Expect(err).To(HaveOccurred())
		})
	})

	Context("TweetsByUser", func() {
		BeforeEach(func() {
			var first, second []map[string]interface{}
			for i := 0; i < 5; i++ {
				first = append(first, apiTweet(fmt.Sprintf("2%d", i), "1", "", "t"))
				second = append(second, apiTweet(fmt.Sprintf("3%d", i), "1", "", "t"))
			}
			api.timeline = [][]map[string]interface{}{first, second}
		})

		It("pages until the limit is reached", func() {
			c, err := source.TweetsByUser(ctx, "1", 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Len()).To(Equal(7))
			Expect(api.paths()).To(Equal([]string{"/users/1/tweets", "/users/1/tweets"}))
			Expect(api.requests[0].URL.Query().Get("max_results")).To(Equal("7"))
		})

		It("stops after one page when it covers the limit", func() {
			c, err := source.TweetsByUser(ctx, "1", 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Len()).To(Equal(5))
			Expect(api.paths()).To(HaveLen(1))
		})
	})

	It("returns the context error once cancelled", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := source.TweetsByIDs(cancelled, []string{"1"})
		Expect(err).To(MatchError(ContainSubstring("context canceled")))
	})
})

var _ = Describe("normalize", func() {
	It("drops media links from the text and keeps the others", func() {
		t := Tweet{ID: "1", Text: "look https://t.co/a at https://t.co/m"}
		t.Entities.URLs = []TweetURL{
			{URL: "https://t.co/a", ExpandedURL: "https://example.com", DisplayURL: "example.com"},
			{URL: "https://t.co/m", MediaKey: "3_1"},
		}
		t.Attachments.MediaKeys = []string{"3_1"}
		idx := newIndex([]*TweetResponse{{Includes: &TweetIncludes{
			Media: []Media{{MediaKey: "3_1", Type: "photo", URL: "https://pbs.twimg.com/1.jpg"}},
		}}})

		out := idx.normalizeTweet(t)
		Expect(out.Text).To(Equal("look https://t.co/a at"))
		Expect(out.Links).To(HaveLen(1))
		Expect(out.Links[0].ExpandedURL).To(Equal("https://example.com"))
		Expect(out.Media).To(HaveLen(1))
		Expect(out.Media[0].URL).To(Equal("https://pbs.twimg.com/1.jpg"))
	})

	It("keeps timestamps it cannot parse", func() {
		Expect(humanTime("yesterday")).To(Equal("yesterday"))
		Expect(humanTime("2021-02-25T14:02:00.000Z")).To(Equal("Feb 25, 2021 14:02"))
	})
})
