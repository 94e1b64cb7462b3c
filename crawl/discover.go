// Package crawl — course expansion.
// A course URL expands, at enqueue time, into the section pages it links to.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/coursepipe/core"
)

// ExpandCourse fetches a course page and returns its section URLs: same-host
// links nested strictly under the course path, normalized, deduplicated, in
// first-seen order. A course page without section links expands to nothing.
func ExpandCourse(ctx context.Context, fetcher core.Fetcher, courseURL string) ([]string, error) {
	base, err := url.Parse(NormalizeURL(courseURL))
	if err != nil {
		return nil, fmt.Errorf("parsing course URL: %w", err)
	}

	html, err := fetcher.Fetch(ctx, base.String())
	if err != nil {
		return nil, fmt.Errorf("discovering sections of %s: %w", courseURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing course page: %w", err)
	}

	coursePath := strings.TrimSuffix(base.Path, "/")
	seen := make(map[string]bool)
	var sections []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		resolved := resolveURL(href, base)
		if resolved == nil {
			return
		}
		if resolved.Host != base.Host {
			return
		}
		if !strings.HasPrefix(resolved.Path, coursePath+"/") {
			return
		}
		normalized := NormalizeURL(resolved.String())
		if seen[normalized] {
			return
		}
		seen[normalized] = true
		sections = append(sections, normalized)
	})

	return sections, nil
}

// resolveURL resolves a potentially relative href against a base, skipping
// non-navigational schemes and fragments.
func resolveURL(href string, base *url.URL) *url.URL {
	if href == "" ||
		strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "tel:") || strings.HasPrefix(href, "#") {
		return nil
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return nil
	}
	resolved := base.ResolveReference(parsed)
	resolved.Fragment = ""
	return resolved
}
