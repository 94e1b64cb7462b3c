// Package sanitize implements the Sanitizer interface.
// It reduces raw course-page HTML to an allow-listed content subset in three
// ordered phases:
//  1. Remove blocklisted elements (site chrome, scripts, hidden widgets)
//     together with their subtrees.
//  2. Apply the allow-list policy: every other tag outside the allow-list is
//     unwrapped — its children survive, the tag itself does not.
//  3. Prune elements left empty by unwrapping, keeping the self-closing
//     content carriers (br, hr, img).
//
// Phase 1 must run before phase 2 so that unwrapping never resurrects
// blocklisted content. Sanitizing already-sanitized HTML is a no-op.
package sanitize

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// blockSelectors are removed entirely, subtree included.
// These contribute no instructional content to the page.
var blockSelectors = []string{
	"script", "style", "noscript", "template",
	"nav", "footer", "header", "aside",
	"iframe", "video", "audio", "object", "embed",
	"svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".breadcrumb",
	".ads", ".advertisement",
	"[hidden]", "[aria-hidden=true]",
}

// allowedElements survive phase 2 as-is. Everything else is unwrapped.
var allowedElements = []string{
	"p",
	"h1", "h2", "h3", "h4", "h5", "h6",
	"table", "thead", "tbody", "tfoot", "tr", "th", "td",
	"pre", "code",
	"ul", "ol", "li",
	"em", "strong", "b", "i",
	"a", "img",
	"blockquote",
	"br", "hr",
}

// selfClosing elements carry content without children and are never pruned.
var selfClosing = map[string]bool{"br": true, "hr": true, "img": true}

// HTMLSanitizer reduces raw HTML to the allow-listed subset.
type HTMLSanitizer struct {
	policy *bluemonday.Policy
}

// New creates an HTMLSanitizer with the course-content policy.
func New() *HTMLSanitizer {
	p := bluemonday.NewPolicy()
	p.AllowElements(allowedElements...)
	// Classes survive so the classifier can read callout markers and
	// code-language hints downstream.
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("href", "title").OnElements("a")
	p.AllowAttrs("src", "alt", "title").OnElements("img")
	p.AllowURLSchemes("http", "https")
	p.AllowRelativeURLs(true)
	p.SkipElementsContent("script", "style", "noscript", "iframe", "object", "embed")
	return &HTMLSanitizer{policy: p}
}

// Sanitize reduces raw HTML to clean, balanced, allow-listed markup.
func (s *HTMLSanitizer) Sanitize(html string) (string, error) {
	blocked, err := removeBlocked(html)
	if err != nil {
		return "", err
	}

	clean := s.policy.Sanitize(blocked)

	return pruneEmpty(clean)
}

// removeBlocked drops blocklisted elements and their subtrees.
func removeBlocked(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}
	for _, sel := range blockSelectors {
		doc.Find(sel).Remove()
	}
	body := doc.Find("body")
	if body.Length() == 0 {
		return "", nil
	}
	inner, err := body.Html()
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}
	return inner, nil
}

// pruneEmpty removes elements with no text and no self-closing descendants.
// Unwrapping can leave such husks behind (e.g. a <blockquote> whose only
// child was a removed widget). Runs to a fixed point since removing a child
// can empty its parent.
func pruneEmpty(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	for {
		removed := 0
		doc.Find("body *").Each(func(_ int, sel *goquery.Selection) {
			if selfClosing[goquery.NodeName(sel)] {
				return
			}
			if strings.TrimSpace(sel.Text()) != "" {
				return
			}
			if sel.Find("br, hr, img").Length() > 0 {
				return
			}
			sel.Remove()
			removed++
		})
		if removed == 0 {
			break
		}
	}

	inner, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}
	return inner, nil
}
