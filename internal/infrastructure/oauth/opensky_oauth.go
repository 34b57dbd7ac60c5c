package oauth

import (
	"context"
	"net/http"

	"tailtracker-service/pkg/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// OpenSkyOAuth handles OAuth authentication with the OpenSky network. The
// history API accepts anonymous requests at a reduced rate limit, so missing
// credentials degrade to a plain HTTP client instead of failing.
type OpenSkyOAuth struct {
	config *clientcredentials.Config
	logger logger.Logger
}

// NewOpenSkyOAuth creates a new OpenSky OAuth handler
func NewOpenSkyOAuth(clientID, clientSecret, tokenURL string, logger logger.Logger) *OpenSkyOAuth {
	var config *clientcredentials.Config
	if clientID != "" && clientSecret != "" {
		config = &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
		}
	}

	return &OpenSkyOAuth{
		config: config,
		logger: logger,
	}
}

// HTTPClient returns an HTTP client that attaches and refreshes bearer
// tokens, or http.DefaultClient-equivalent behavior when unauthenticated.
func (o *OpenSkyOAuth) HTTPClient(ctx context.Context) *http.Client {
	if o.config == nil {
		o.logger.Warn("OpenSky credentials not configured, using anonymous access")
		return &http.Client{}
	}
	return o.config.Client(ctx)
}

// TokenSource returns a reusable token source for the client-credentials grant
func (o *OpenSkyOAuth) TokenSource(ctx context.Context) oauth2.TokenSource {
	if o.config == nil {
		return nil
	}
	return o.config.TokenSource(ctx)
}
