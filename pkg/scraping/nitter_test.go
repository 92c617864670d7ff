package scraping_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/lisanmuaddib/twindle/pkg/masa/scraper"
	"github.com/lisanmuaddib/twindle/pkg/scraping"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
)

const conversationPage = `<html><body>
<div class="conversation">
  <div class="main-thread">
    <div class="timeline-item before-tweet thread-line">
      <a class="tweet-link" href="/alice/status/100#m"></a>
      <a class="username" href="/alice">@alice</a>
    </div>
    <div class="main-tweet">
      <div class="timeline-item">
        <a class="tweet-link" href="/alice/status/102#m"></a>
        <a class="username" href="/alice">@Alice</a>
      </div>
    </div>
    <div class="after-tweet thread-line">
      <div class="timeline-item">
        <a class="tweet-link" href="/bob/status/103#m"></a>
        <a class="username" href="/bob">@bob</a>
      </div>
      <div class="timeline-item">
        <a class="tweet-link" href="/alice/status/104#m"></a>
        <a class="username" href="/alice">@alice</a>
      </div>
      <div class="timeline-item">
        <a class="tweet-link" href="/alice/status/104#m"></a>
        <a class="username" href="/alice">@alice</a>
      </div>
      <div class="timeline-item show-more"><a href="/alice/status/104">more</a></div>
    </div>
  </div>
  <div class="replies">
    <div class="timeline-item">
      <a class="tweet-link" href="/carol/status/200#m"></a>
      <a class="username" href="/carol">@carol</a>
    </div>
  </div>
</div>
</body></html>`

var _ = Describe("NitterResolver", func() {
	var (
		server   *httptest.Server
		config   *scraping.Config
		lastPath string
		status   int
	)

	BeforeEach(func() {
		status = http.StatusOK
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lastPath = r.URL.Path
			w.WriteHeader(status)
			_, _ = w.Write([]byte(conversationPage))
		}))
		DeferCleanup(server.Close)

		logger := logrus.New()
		logger.SetOutput(GinkgoWriter)
		config = &scraping.Config{
			Backend:       scraping.BackendNitter,
			NitterBaseURL: server.URL + "/",
			Logger:        logger,
		}
	})

	It("returns the author's thread in page order", func() {
		resolver, err := scraping.NewNitterResolver(config)
		Expect(err).NotTo(HaveOccurred())

		ids, err := resolver.ResolveThreadIDs(context.Background(), "102")
		Expect(err).NotTo(HaveOccurred())
		Expect(ids).To(Equal([]string{"100", "102", "104"}))
		Expect(lastPath).To(Equal("/i/status/102"))
	})

	It("fails on a non success status", func() {
		status = http.StatusNotFound
		resolver, err := scraping.NewNitterResolver(config)
		Expect(err).NotTo(HaveOccurred())

		_, err = resolver.ResolveThreadIDs(context.Background(), "102")
		Expect(err).To(MatchError(ContainSubstring("status 404")))
	})

	It("keeps the requested tweet when the page has no thread", func() {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body></body></html>"))
		Expect(err).NotTo(HaveOccurred())
		Expect(scraping.ThreadIDsFromDocument(doc, "7")).To(Equal([]string{"7"}))
	})
})

var _ = Describe("NewResolver", func() {
	It("rejects unknown backends", func() {
		_, err := scraping.NewResolver(&scraping.Config{Backend: "selenium"})
		Expect(err).To(MatchError(ContainSubstring("unknown backend")))
	})

	It("defaults to nitter", func() {
		resolver, err := scraping.NewResolver(&scraping.Config{})
		Expect(err).NotTo(HaveOccurred())
		Expect(resolver).To(BeAssignableToTypeOf(&scraping.NitterResolver{}))
	})

	It("builds the masa thread resolver", func() {
		resolver, err := scraping.NewResolver(&scraping.Config{Backend: scraping.BackendMasa})
		Expect(err).NotTo(HaveOccurred())
		Expect(resolver).To(BeAssignableToTypeOf(&scraper.ThreadResolver{}))
	})
})
