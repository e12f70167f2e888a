// Package http wraps the HTTP transport used to talk to the invoicing
// API: credential injection, the POST-only JSON wire contract and the
// classification of application errors.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/fivetwenty-io/fic-client/pkg/fic"
	"github.com/hashicorp/go-retryablehttp"
)

const defaultUserAgent = "fic-client/1.0"

// Credentials are the account credentials injected into every request
// body.
type Credentials struct {
	APIUID string
	APIKey string
}

// Client is the HTTP transport. It implements fic.Transport.
type Client struct {
	baseURL     string
	credentials Credentials
	httpClient  *retryablehttp.Client
	userAgent   string
	logger      fic.Logger
	debug       bool
}

// Option configures a Client.
type Option func(*Client)

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithLogger sets a logger for the client.
func WithLogger(logger fic.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging. Requires a logger.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithRetryConfig tunes the retry behavior. The default performs no retry:
// the remote API bills per mutation, so a replayed request is not
// idempotent.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax

		if waitMin > 0 {
			c.httpClient.RetryWaitMin = waitMin
		}

		if waitMax > 0 {
			c.httpClient.RetryWaitMax = waitMax
		}
	}
}

// WithHTTPTimeout sets the underlying HTTP client timeout.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// NewClient creates a new transport for the given endpoint and account
// credentials.
func NewClient(baseURL string, credentials Credentials, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 30 * time.Second
	retryClient.Logger = nil

	// Never retry on status. Every received response, whatever its code,
	// must reach the caller so it can be classified; only transport-level
	// failures are retryable.
	retryClient.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}

		return err != nil, nil
	}

	client := &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		credentials: credentials,
		httpClient:  retryClient,
		userAgent:   defaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Request sends one API request and decodes the JSON response body. The
// account credentials are injected into the body alongside the
// caller-supplied fields. A non-200 status or a non-JSON response fails
// with a *fic.BadResponseError; a well-formed body carrying an error
// marker fails with a classified *fic.RequestError.
func (c *Client) Request(ctx context.Context, method, path string, body fic.Wire) (fic.Wire, error) {
	payload := make(fic.Wire, len(body)+2)
	for key, value := range body {
		payload[key] = value
	}

	payload["api_uid"] = c.credentials.APIUID
	payload["api_key"] = c.credentials.APIKey

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	requestURL := c.baseURL + "/" + strings.TrimPrefix(path, "/")

	req, err := retryablehttp.NewRequestWithContext(ctx, method, requestURL, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	if c.debug && c.logger != nil {
		c.logger.Debug("api request", map[string]interface{}{
			"method": method,
			"path":   path,
		})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")

	if c.debug && c.logger != nil {
		c.logger.Debug("api response", map[string]interface{}{
			"method":       method,
			"path":         path,
			"status":       resp.StatusCode,
			"content_type": contentType,
		})
	}

	if resp.StatusCode != http.StatusOK || !isJSONContentType(contentType) {
		return nil, &fic.BadResponseError{
			Method:      method,
			Path:        path,
			StatusCode:  resp.StatusCode,
			ContentType: contentType,
			Body:        responseBody,
		}
	}

	wire, err := fic.DecodeWire(responseBody)
	if err != nil {
		return nil, err
	}

	if wire.Has("error") || wire.Has("error_code") {
		message := wire.String("error")
		if message == "" {
			message = resp.Status
		}

		return nil, fic.NewRequestError(wire.Int("error_code"), message, method, path)
	}

	return wire, nil
}

func isJSONContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == "application/json"
}
