package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/lisanmuaddib/twindle/pkg/interfaces/twitter"
	"github.com/lisanmuaddib/twindle/pkg/kindle"
	"github.com/lisanmuaddib/twindle/pkg/render"
	"github.com/lisanmuaddib/twindle/pkg/scraping"
	"github.com/lisanmuaddib/twindle/pkg/twindle"
)

// Factory builds the production collaborators from the environment. Each
// one is created on first use only, so a mock run never loads API or mail
// settings.
type Factory struct {
	env    twindle.EnvConfig
	logger *logrus.Logger
}

// NewFactory creates a Factory
func NewFactory(env twindle.EnvConfig, logger *logrus.Logger) *Factory {
	return &Factory{
		env:    env,
		logger: logger,
	}
}

// TweetSource creates the v2 API client
func (f *Factory) TweetSource() (twindle.TweetSource, error) {
	config, err := twitter.NewTwitterConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create Twitter config: %w", err)
	}
	// Override logger to use our main logger
	config.Logger = f.logger
	if config.BearerToken == "" {
		config.BearerToken = f.env.BearerToken
	}

	client, err := twitter.NewTwitterClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Twitter client: %w", err)
	}
	return twitter.NewSource(client), nil
}

// IDResolver creates the scraper of the configured backend
func (f *Factory) IDResolver() (twindle.IDResolver, error) {
	config, err := scraping.NewConfig(f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create scraping config: %w", err)
	}
	return scraping.NewResolver(config)
}

// Renderer creates the document renderer
func (f *Factory) Renderer() (twindle.Renderer, error) {
	return render.NewRenderer(render.Config{Logger: f.logger}), nil
}

// Deliverer creates the Kindle mail sender
func (f *Factory) Deliverer() (twindle.Deliverer, error) {
	config, err := kindle.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create mail config: %w", err)
	}
	config.Logger = f.logger
	return kindle.NewSender(config)
}
