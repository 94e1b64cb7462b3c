// Package crawl — URL rules.
// Normalization, host checks, and course-URL detection for the work queue.
package crawl

import (
	"net/url"
	"strings"
)

// NormalizeURL strips fragments and trailing slashes so that equivalent
// URLs deduplicate to one queue entry.
func NormalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	parsed.Fragment = ""
	if parsed.Path != "/" {
		parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	}
	return parsed.String()
}

// SameHost reports whether rawURL belongs to the given host.
func SameHost(rawURL string, host string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return parsed.Host == host
}

// IsCourseURL reports whether a URL points at a course root rather than a
// single section. A course root path is /.../course/<slug>; anything nested
// deeper is a section page.
func IsCourseURL(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	segments := pathSegments(parsed.Path)
	for i, seg := range segments {
		if seg == "course" {
			return len(segments) == i+2
		}
	}
	return false
}

// pathSegments splits a URL path into its non-empty segments.
func pathSegments(path string) []string {
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}
