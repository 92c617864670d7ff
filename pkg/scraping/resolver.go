package scraping

import (
	"context"
	"fmt"

	"github.com/lisanmuaddib/twindle/pkg/masa/masatwitter"
	"github.com/lisanmuaddib/twindle/pkg/masa/scraper"
)

// Resolver finds the IDs of a thread
type Resolver interface {
	ResolveThreadIDs(ctx context.Context, tweetID string) ([]string, error)
}

// NewResolver builds the resolver of the configured backend
func NewResolver(config *Config) (Resolver, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Backend {
	case BackendMasa:
		masaConfig, err := masatwitter.NewConfig(config.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to load masa config: %w", err)
		}
		return scraper.NewThreadResolver(masatwitter.NewClient(masaConfig), config.Logger), nil
	default:
		return NewNitterResolver(config)
	}
}
