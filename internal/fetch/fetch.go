// Package fetch provides HTTP content retrieval for source adapters.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// UserAgent identifies the aggregator to the sites it fetches from.
	UserAgent = "eventsync/1.0 (github.com/pfrederiksen/eventsync)"

	// DefaultTimeout bounds a single fetch when no timeout is configured.
	DefaultTimeout = 10 * time.Second

	// maxBodyBytes caps how much of a response body is read. Listing
	// pages past this point carry no extractable events.
	maxBodyBytes = 2 << 20
)

// NetworkError reports a failed content fetch: transport errors, timeouts,
// and non-200 responses. Adapters absorb these; they never abort a run.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ContentFetcher retrieves raw page content for a URL.
type ContentFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPFetcher is the production ContentFetcher backed by net/http.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a fetcher with the given per-request timeout.
// A non-positive timeout falls back to DefaultTimeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the page at url and returns its body as text.
// Failures are returned as *NetworkError.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &NetworkError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &NetworkError{URL: url, Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", &NetworkError{URL: url, Err: fmt.Errorf("reading body: %w", err)}
	}

	return string(body), nil
}
