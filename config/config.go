// Package config defines run configuration and input validation for
// coursepipe. Validation failures surface as core.ValidationError and fail
// the run before any network activity.
package config

import (
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gaurav-prasanna/coursepipe/core"
	"github.com/gaurav-prasanna/coursepipe/core/render"
	"github.com/gaurav-prasanna/coursepipe/crawl"
)

const (
	// requiredCookie must appear in the credential for the platform to
	// accept authenticated requests.
	requiredCookie = "session_id"

	defaultFailureThreshold = 3
	defaultPausePoll        = 200 * time.Millisecond
)

// credentialRe validates the name=value(; name=value)* cookie grammar.
var credentialRe = regexp.MustCompile(`^\s*[\w.-]+=[^;]*(?:\s*;\s*[\w.-]+=[^;]*)*\s*$`)

// RunConfig configures one download run.
type RunConfig struct {
	// Credential is the session cookie string sent with every request.
	Credential string
	// AllowedHost restricts which host URLs may belong to. When empty it
	// is derived from the first input URL during validation.
	AllowedHost string
	// OutputDir receives one file per document per format.
	OutputDir string
	// Render selects output formats and markdown behavior.
	Render render.Config
	// RequestDelay is slept between queue items. Zero disables the delay.
	RequestDelay time.Duration
	// FailureThreshold trips the circuit breaker after this many
	// consecutive failures. Default: 3.
	FailureThreshold int
	// PausePoll is the interval at which a paused run re-checks its state.
	PausePoll time.Duration
	// Logger receives orchestrator progress logging. Default: slog.Default().
	Logger *slog.Logger
}

// Defaults fills unset fields with their documented defaults.
func (c *RunConfig) Defaults() {
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = defaultFailureThreshold
	}
	if c.PausePoll <= 0 {
		c.PausePoll = defaultPausePoll
	}
	if len(c.Render.Formats) == 0 {
		c.Render = render.DefaultConfig()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Validate checks the configuration together with the run's input URLs.
// On success, AllowedHost is set (derived from the first URL when unset).
func (c *RunConfig) Validate(urls []string) error {
	if err := validateCredential(c.Credential); err != nil {
		return err
	}
	if len(urls) == 0 {
		return &core.ValidationError{Field: "urls", Reason: "at least one URL is required"}
	}
	if len(c.Render.Formats) == 0 {
		return &core.ValidationError{Field: "formats", Reason: "at least one output format is required"}
	}
	if err := validateOutputDir(c.OutputDir); err != nil {
		return err
	}

	for _, raw := range urls {
		parsed, err := url.Parse(raw)
		if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			return &core.ValidationError{Field: "urls", Reason: "not an absolute http(s) URL: " + raw}
		}
		if c.AllowedHost == "" {
			c.AllowedHost = parsed.Host
		}
		if !crawl.SameHost(raw, c.AllowedHost) {
			return &core.ValidationError{
				Field:  "urls",
				Reason: raw + " does not belong to host " + c.AllowedHost,
			}
		}
	}
	return nil
}

// validateCredential enforces the cookie grammar and the required session
// cookie name.
func validateCredential(credential string) error {
	if strings.TrimSpace(credential) == "" {
		return &core.ValidationError{Field: "credential", Reason: "must not be empty"}
	}
	if !credentialRe.MatchString(credential) {
		return &core.ValidationError{Field: "credential", Reason: "must match name=value(; name=value)*"}
	}
	for _, pair := range strings.Split(credential, ";") {
		name, _, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if ok && name == requiredCookie {
			return nil
		}
	}
	return &core.ValidationError{Field: "credential", Reason: "missing required cookie " + requiredCookie}
}

// validateOutputDir rejects parent-traversal segments.
func validateOutputDir(dir string) error {
	for _, seg := range strings.FieldsFunc(dir, func(r rune) bool { return r == '/' || r == '\\' }) {
		if seg == ".." {
			return &core.ValidationError{Field: "output_dir", Reason: "must not contain parent-traversal segments"}
		}
	}
	return nil
}
