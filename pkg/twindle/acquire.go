package twindle

import (
	"context"
	"fmt"

	"github.com/lisanmuaddib/twindle/pkg/render"
	"github.com/lisanmuaddib/twindle/pkg/tweets"
	"github.com/sirupsen/logrus"
)

// Strategy identifies how tweets are acquired for a run
type Strategy int

const (
	// StrategyDirect fetches a tweet and its author thread through the API
	StrategyDirect Strategy = iota
	// StrategyMock uses the embedded fixture and never touches the network
	StrategyMock
	// StrategyUser fetches the recent tweets of a user
	StrategyUser
	// StrategyScrape resolves thread IDs by scraping, then fetches them in a batch
	StrategyScrape
)

func (s Strategy) String() string {
	switch s {
	case StrategyMock:
		return "mock"
	case StrategyUser:
		return "user"
	case StrategyScrape:
		return "scrape"
	default:
		return "direct"
	}
}

// SelectStrategy picks exactly one strategy. Priority: mock, user, scrape, direct.
func SelectStrategy(cfg RunConfig) Strategy {
	switch {
	case cfg.Mock:
		return StrategyMock
	case cfg.UserID != "":
		return StrategyUser
	case cfg.Scrape:
		return StrategyScrape
	default:
		return StrategyDirect
	}
}

// TweetSource fetches tweets through the API and normalizes them
type TweetSource interface {
	// TweetsByID returns the tweet and the rest of its author's thread
	TweetsByID(ctx context.Context, tweetID string) (*tweets.Collection, error)
	// TweetsByIDs returns the given tweets in the given order
	TweetsByIDs(ctx context.Context, tweetIDs []string) (*tweets.Collection, error)
	// TweetsByUser returns up to roughly limit recent tweets of a user
	TweetsByUser(ctx context.Context, userID string, limit int) (*tweets.Collection, error)
}

// IDResolver finds the IDs of a thread without the API
type IDResolver interface {
	ResolveThreadIDs(ctx context.Context, tweetID string) ([]string, error)
}

// Renderer writes a collection to path in the given format
type Renderer interface {
	Render(ctx context.Context, c *tweets.Collection, format render.Format, path string) (render.Artifact, error)
}

// Deliverer sends a rendered file to an address
type Deliverer interface {
	Send(ctx context.Context, to, path string) error
}

// Factory builds collaborators on demand. The runner only asks for what the
// selected strategy needs, and only after the environment checks pass.
type Factory interface {
	TweetSource() (TweetSource, error)
	IDResolver() (IDResolver, error)
	Renderer() (Renderer, error)
	Deliverer() (Deliverer, error)
}

func (r *Runner) acquire(ctx context.Context, cfg RunConfig) (*tweets.Collection, error) {
	strategy := SelectStrategy(cfg)
	log := r.log.WithFields(logrus.Fields{
		"strategy": strategy.String(),
		"tweet_id": cfg.TweetID,
		"user_id":  cfg.UserID,
	})
	log.Debug("Acquiring tweets")

	switch strategy {
	case StrategyMock:
		return tweets.Mock()

	case StrategyUser:
		source, err := r.factory.TweetSource()
		if err != nil {
			return nil, fmt.Errorf("failed to create tweet source: %w", err)
		}
		c, err := source.TweetsByUser(ctx, cfg.UserID, cfg.NumTweets)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch user tweets: %w", err)
		}
		if c.Len() > cfg.NumTweets {
			log.WithFields(logrus.Fields{
				"fetched": c.Len(),
				"max":     cfg.NumTweets,
			}).Debug("Truncating user tweets")
			c.Truncate(cfg.NumTweets)
		}
		return c, nil

	case StrategyScrape:
		resolver, err := r.factory.IDResolver()
		if err != nil {
			return nil, fmt.Errorf("failed to create scraper: %w", err)
		}
		ids, err := resolver.ResolveThreadIDs(ctx, cfg.TweetID)
		if err != nil {
			return nil, fmt.Errorf("failed to scrape thread ids: %w", err)
		}
		log.WithField("num_ids", len(ids)).Debug("Resolved thread ids")

		source, err := r.factory.TweetSource()
		if err != nil {
			return nil, fmt.Errorf("failed to create tweet source: %w", err)
		}
		c, err := source.TweetsByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch tweets: %w", err)
		}
		return c, nil

	default:
		source, err := r.factory.TweetSource()
		if err != nil {
			return nil, fmt.Errorf("failed to create tweet source: %w", err)
		}
		c, err := source.TweetsByID(ctx, cfg.TweetID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch tweet: %w", err)
		}
		return c, nil
	}
}
