package integration

import (
	"context"
	"encoding/json"
	"os"

	"github.com/lisanmuaddib/twindle/pkg/masa/masatwitter"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
)

const (
	DefaultTweetCount  = 10
	DefaultSearchQuery = "conversation_id:" + testTweetID
)

var _ = Describe("Masa Twitter API", func() {
	var (
		twitterClient *masatwitter.Client
		logger        *logrus.Logger
	)

	BeforeEach(func() {
		// Skip if not running integration tests
		if os.Getenv("INTEGRATION_TESTS") != "true" {
			Skip("Skipping integration test")
		}

		logger = logrus.New()
		logger.SetLevel(logrus.DebugLevel)

		clientConfig, err := masatwitter.NewConfig(logger)
		Expect(err).NotTo(HaveOccurred())

		twitterClient = masatwitter.NewClient(clientConfig)
		Expect(twitterClient).NotTo(BeNil())
	})

	It("should search a conversation", func() {
		tweets, err := twitterClient.SearchWithOptions(context.Background(), DefaultSearchQuery, masatwitter.SearchOptions{
			TweetCount: DefaultTweetCount,
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(len(tweets)).To(BeNumerically("<=", DefaultTweetCount))

		jsonData, err := json.MarshalIndent(tweets, "", "    ")
		Expect(err).NotTo(HaveOccurred())

		logger.WithFields(logrus.Fields{
			"query":        DefaultSearchQuery,
			"tweet_count":  len(tweets),
			"raw_response": string(jsonData),
		}).Info("Received tweet data")
	})
})
