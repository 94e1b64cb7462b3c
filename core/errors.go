// Package core — error taxonomy.
// Per-item errors (fetch, extraction, render) are surfaced by the orchestrator
// as progress events; ValidationError and CircuitOpenError terminate the run.
package core

import "fmt"

// FetchErrorKind distinguishes the ways a fetch can fail.
type FetchErrorKind string

const (
	// FetchRateLimited means the server answered 429 even after the single retry.
	FetchRateLimited FetchErrorKind = "rate_limited"
	// FetchTransport means the request never produced an HTTP response.
	FetchTransport FetchErrorKind = "transport"
	// FetchHTTP means the server answered with a non-success status.
	FetchHTTP FetchErrorKind = "http"
)

// ValidationError reports invalid run input. It is never retried and fails
// the run before any network activity.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// FetchError reports a failed fetch for one URL.
type FetchError struct {
	Kind   FetchErrorKind
	URL    string
	Status int   // HTTP status, when Kind is FetchHTTP or FetchRateLimited
	Err    error // underlying cause, when Kind is FetchTransport
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchRateLimited:
		return fmt.Sprintf("rate limited fetching %s", e.URL)
	case FetchHTTP:
		return fmt.Sprintf("unexpected status %d for %s", e.Status, e.URL)
	default:
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// ExtractionError means no usable content region was found on a page.
type ExtractionError struct {
	URL string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("no content extracted from %s", e.URL)
}

// RenderError reports malformed intermediate data during rendering.
type RenderError struct {
	Format string
	Reason string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering %s: %s", e.Format, e.Reason)
}

// CircuitOpenError halts the run after too many consecutive failures.
type CircuitOpenError struct {
	Failures int
}

func (e *CircuitOpenError) Error() string {
	return fmt.Sprintf("aborting after %d consecutive failures", e.Failures)
}
