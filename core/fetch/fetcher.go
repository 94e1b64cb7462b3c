// Package fetch implements the Fetcher interface.
// It performs authenticated HTTP GET requests against the learning platform,
// retrying exactly once on a 429 before giving up.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gaurav-prasanna/coursepipe/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultMaxBytes  = 10 * 1024 * 1024
	defaultUserAgent = "coursepipe/1.0 (https://github.com/gaurav-prasanna/coursepipe)"

	// rateLimitBackoff is how long to wait before the single 429 retry.
	rateLimitBackoff = 5 * time.Second
)

// HTTPFetcher fetches course pages via HTTP with a session credential.
type HTTPFetcher struct {
	client     *http.Client
	credential string
	backoff    time.Duration
	maxBytes   int64
}

// Option customizes an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithBackoff overrides the rate-limit retry backoff.
func WithBackoff(d time.Duration) Option {
	return func(f *HTTPFetcher) { f.backoff = d }
}

// WithTimeout overrides the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *HTTPFetcher) { f.client.Timeout = d }
}

// WithMaxBytes caps the response body size.
func WithMaxBytes(n int64) Option {
	return func(f *HTTPFetcher) { f.maxBytes = n }
}

// New creates an HTTPFetcher that attaches credential as the Cookie header.
func New(credential string, opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		client:     &http.Client{Timeout: defaultTimeout},
		credential: credential,
		backoff:    rateLimitBackoff,
		maxBytes:   defaultMaxBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves the HTML content of the given URL.
// A 429 response triggers one fixed-backoff retry; a second 429 surfaces
// a rate-limited FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	html, status, err := f.fetchOnce(ctx, url)
	if err != nil {
		return "", err
	}
	if status == http.StatusTooManyRequests {
		select {
		case <-time.After(f.backoff):
		case <-ctx.Done():
			return "", &core.FetchError{Kind: core.FetchTransport, URL: url, Err: ctx.Err()}
		}
		html, status, err = f.fetchOnce(ctx, url)
		if err != nil {
			return "", err
		}
		if status == http.StatusTooManyRequests {
			return "", &core.FetchError{Kind: core.FetchRateLimited, URL: url, Status: status}
		}
	}
	if status < 200 || status >= 300 {
		return "", &core.FetchError{Kind: core.FetchHTTP, URL: url, Status: status}
	}
	return html, nil
}

// fetchOnce performs a single GET. A non-nil error means the request never
// produced a readable response; HTTP status handling is the caller's job.
func (f *HTTPFetcher) fetchOnce(ctx context.Context, url string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, &core.FetchError{Kind: core.FetchTransport, URL: url, Err: err}
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Cookie", f.credential)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", 0, &core.FetchError{Kind: core.FetchTransport, URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return "", 0, &core.FetchError{Kind: core.FetchTransport, URL: url, Err: fmt.Errorf("reading response body: %w", err)}
	}
	if int64(len(body)) > f.maxBytes {
		return "", 0, &core.FetchError{Kind: core.FetchTransport, URL: url, Err: fmt.Errorf("response exceeds %d bytes", f.maxBytes)}
	}
	return string(body), resp.StatusCode, nil
}
