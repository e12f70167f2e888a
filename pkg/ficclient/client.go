// Package ficclient provides the main entry point for creating invoicing
// API clients.
package ficclient

import (
	"strings"

	"github.com/fivetwenty-io/fic-client/internal/client"
	"github.com/fivetwenty-io/fic-client/internal/http"
	"github.com/fivetwenty-io/fic-client/pkg/fic"
)

// DefaultEndpoint is the production API endpoint.
const DefaultEndpoint = "https://api.fattureincloud.it/v1"

// New creates a new invoicing API client.
func New(config *fic.Config) (fic.Client, error) {
	if config == nil {
		return nil, fic.ErrConfigRequired
	}

	if config.APIUID == "" || config.APIKey == "" {
		return nil, fic.ErrCredentialsRequired
	}

	endpoint := config.APIEndpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	// Normalize API endpoint
	endpoint = strings.TrimSuffix(endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	opts := []http.Option{}

	if config.UserAgent != "" {
		opts = append(opts, http.WithUserAgent(config.UserAgent))
	}

	if config.Logger != nil {
		opts = append(opts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, http.WithDebug(true))
	}

	if config.RetryMax > 0 {
		opts = append(opts, http.WithRetryConfig(config.RetryMax, config.RetryWaitMin, config.RetryWaitMax))
	}

	if config.HTTPTimeout > 0 {
		opts = append(opts, http.WithHTTPTimeout(config.HTTPTimeout))
	}

	transport := http.NewClient(endpoint, http.Credentials{
		APIUID: config.APIUID,
		APIKey: config.APIKey,
	}, opts...)

	return client.New(transport), nil
}

// NewWithTransport creates a client on top of a caller-supplied transport.
// Useful for tests and custom transports.
func NewWithTransport(transport fic.Transport) fic.Client {
	return client.New(transport)
}
