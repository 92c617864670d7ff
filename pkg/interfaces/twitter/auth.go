package twitter

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mrjones/oauth"
)

const (
	BaseURL           = "https://api.twitter.com/2"
	RequestTokenURL   = "https://api.twitter.com/oauth/request_token"
	AuthorizeTokenURL = "https://api.twitter.com/oauth/authorize"
	AccessTokenURL    = "https://api.twitter.com/oauth/access_token"
)

type Authenticator struct {
	client      *http.Client
	bearerToken string
	userContext bool
}

// NewAuthenticator prefers OAuth 1.0a user context, which can read protected
// accounts the user follows, and falls back to the app-only bearer token
func NewAuthenticator(config *TwitterConfig) (*Authenticator, error) {
	if config.HasUserContext() {
		return newUserAuthenticator(
			config.ConsumerKey,
			config.ConsumerSecret,
			config.AccessToken,
			config.AccessTokenSecret,
		)
	}

	if config.BearerToken != "" {
		return newAppAuthenticator(config.BearerToken)
	}

	return nil, fmt.Errorf("either OAuth 1.0a credentials or Bearer token must be provided")
}

func newAppAuthenticator(bearerToken string) (*Authenticator, error) {
	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	return &Authenticator{
		client:      client,
		bearerToken: bearerToken,
	}, nil
}

func newUserAuthenticator(consumerKey, consumerSecret, accessToken, accessTokenSecret string) (*Authenticator, error) {
	consumer := oauth.NewConsumer(consumerKey, consumerSecret, oauth.ServiceProvider{
		RequestTokenUrl:   RequestTokenURL,
		AuthorizeTokenUrl: AuthorizeTokenURL,
		AccessTokenUrl:    AccessTokenURL,
	})

	consumer.HttpClient = &http.Client{
		Timeout: 30 * time.Second,
	}

	token := oauth.AccessToken{
		Token:  accessToken,
		Secret: accessTokenSecret,
	}

	client, err := consumer.MakeHttpClient(&token)
	if err != nil {
		return nil, fmt.Errorf("failed to create OAuth client: %w", err)
	}

	return &Authenticator{
		client:      client,
		userContext: true,
	}, nil
}

func (a *Authenticator) GetClient() *http.Client {
	return a.client
}

// UserContext reports whether requests are signed with OAuth 1.0a
func (a *Authenticator) UserContext() bool {
	return a.userContext
}

func (a *Authenticator) SetAuthHeader(req *http.Request) {
	if a.bearerToken != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", a.bearerToken))
	}
	// OAuth 1.0a client signs requests itself
}
