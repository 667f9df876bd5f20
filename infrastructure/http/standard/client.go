// ABOUTME: Standard HTTP client implementation with retry logic and timeout support
// ABOUTME: Fetches pages with browser-like headers and linear backoff after each failed attempt

package standard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"bookmarkcast-api/core/errors"
	"bookmarkcast-api/core/interfaces"
)

const (
	// DefaultUserAgent mimics a desktop browser; many sites refuse bot user agents
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	// DefaultAcceptLanguage is sent with every page fetch
	DefaultAcceptLanguage = "en-US,en;q=0.9"

	apiUserAgent = "BookmarkcastAPI/1.0"
)

// Config holds the fetch policy of the client
type Config struct {
	// Timeout bounds each individual attempt
	Timeout time.Duration

	// Attempts is the total number of tries for a GET, including the first one
	Attempts int

	// BaseDelay is multiplied by the attempt number to get the wait after a failed try
	BaseDelay time.Duration

	UserAgent      string
	AcceptLanguage string

	// Transport overrides the default round tripper (e.g. a logging transport)
	Transport http.RoundTripper
}

// DefaultConfig returns the fetch policy used for bookmark pages:
// 15s per attempt, 3 attempts, waits of 1s, 2s and 3s after the failures.
func DefaultConfig() Config {
	return Config{
		Timeout:        15 * time.Second,
		Attempts:       3,
		BaseDelay:      1 * time.Second,
		UserAgent:      DefaultUserAgent,
		AcceptLanguage: DefaultAcceptLanguage,
	}
}

// StandardHTTPClient implements the HTTPClient interface using standard library
type StandardHTTPClient struct {
	client *http.Client
	cfg    Config
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewStandardHTTPClient creates a new HTTP client with the given fetch policy
func NewStandardHTTPClient(cfg Config) *StandardHTTPClient {
	defaults := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.Attempts <= 0 {
		cfg.Attempts = defaults.Attempts
	}
	if cfg.BaseDelay < 0 {
		cfg.BaseDelay = 0
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}
	if cfg.AcceptLanguage == "" {
		cfg.AcceptLanguage = defaults.AcceptLanguage
	}

	client := &http.Client{Timeout: cfg.Timeout}
	if cfg.Transport != nil {
		client.Transport = cfg.Transport
	}

	return &StandardHTTPClient{
		client: client,
		cfg:    cfg,
		sleep:  sleepContext,
	}
}

// Get performs an HTTP GET request, retrying on transport errors and non-2xx
// statuses. Every failed attempt n is followed by a wait of n*BaseDelay; after
// the last one a *errors.FetchError is returned.
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	var lastErr error
	lastStatus := 0

	for attempt := 1; attempt <= c.cfg.Attempts; attempt++ {
		resp, err := c.do(ctx, url)
		if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return &httpResponse{
				statusCode: resp.StatusCode,
				body:       resp.Body,
				headers:    resp.Header,
			}, nil
		}

		if err != nil {
			lastErr = err
		} else {
			// Drain so the connection can be reused for the retry
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
			resp.Body.Close()
			lastStatus = resp.StatusCode
			lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
		}

		// Linear backoff: 1x, 2x, 3x BaseDelay
		if err := c.sleep(ctx, time.Duration(attempt)*c.cfg.BaseDelay); err != nil {
			return nil, &errors.FetchError{URL: url, Attempts: attempt, StatusCode: lastStatus, Err: err}
		}
	}

	return nil, &errors.FetchError{
		URL:        url,
		Attempts:   c.cfg.Attempts,
		StatusCode: lastStatus,
		Err:        lastErr,
	}
}

func (c *StandardHTTPClient) do(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", c.cfg.AcceptLanguage)

	return c.client.Do(req)
}

// Post performs a single HTTP POST request
func (c *StandardHTTPClient) Post(ctx context.Context, url string, body io.Reader, headers map[string]string) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", apiUserAgent)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
	}, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
