// Package segment implements the Segmenter interface.
// It partitions sanitized HTML into an ordered sequence of classified
// sections using two passes:
//  1. Structural: a prioritized table of CSS selectors extracts marked
//     elements (callout classes, code blocks, tables) as typed sections,
//     removing each match from the working tree so it is not reprocessed.
//  2. Remainder: whatever survives pass 1 becomes a single text section,
//     reclassified by a leading keyword ("Note:", "Warning:", ...) when one
//     is present. The remainder carries the page's primary narrative, so it
//     is inserted at the front of the result.
package segment

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/coursepipe/core"
)

// structuralRule maps a selector pattern to a section kind.
type structuralRule struct {
	selector string
	kind     core.SectionKind
}

// structuralRules are applied in order; earlier rules win on nested matches
// because extraction removes the matched subtree.
var structuralRules = []structuralRule{
	{`[class*="info"], [class*="alert"]`, core.KindInfo},
	{`[class*="warning"], [class*="danger"]`, core.KindWarning},
	{`[class*="example"], [class*="exercise"]`, core.KindExample},
	{`[class*="summary"], [class*="abstract"]`, core.KindAbstract},
	{`[class*="note"], [class*="important"], [class*="tip"]`, core.KindNote},
	{`pre`, core.KindCode},
	{`table`, core.KindTable},
}

// leadingKeywords reclassify the remainder section when its flattened text
// starts with one of these markers (case-insensitive).
var leadingKeywords = []struct {
	prefix string
	kind   core.SectionKind
}{
	{"note:", core.KindNote},
	{"warning:", core.KindWarning},
	{"example:", core.KindExample},
	{"summary:", core.KindAbstract},
	{"info:", core.KindInfo},
}

// HTMLSegmenter classifies sanitized HTML into sections.
type HTMLSegmenter struct{}

// New creates an HTMLSegmenter.
func New() *HTMLSegmenter {
	return &HTMLSegmenter{}
}

// Segment partitions cleanHTML into classified sections.
// Non-empty input always yields at least one section.
func (g *HTMLSegmenter) Segment(cleanHTML string) ([]core.Section, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cleanHTML))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var sections []core.Section

	// Pass 1: structural extraction in rule priority order.
	for _, rule := range structuralRules {
		doc.Find("body").Find(rule.selector).Each(func(_ int, sel *goquery.Selection) {
			// Outermost match wins; its subtree is removed wholesale.
			if sel.Parents().Filter(rule.selector).Length() > 0 {
				return
			}
			section, ok := extractSection(sel, rule.kind)
			if ok {
				sections = append(sections, section)
			}
		})
		doc.Find("body").Find(rule.selector).Remove()
	}

	// Pass 2: the remainder becomes the leading narrative section.
	if remainder, ok := remainderSection(doc); ok {
		sections = append([]core.Section{remainder}, sections...)
	}

	if len(sections) == 0 && cleanHTML != "" {
		// Never hand zero sections to a renderer for non-empty input.
		sections = []core.Section{{Kind: core.KindText, Content: cleanHTML}}
	}
	return sections, nil
}

// extractSection builds a section from a matched element.
// Empty candidates are dropped.
func extractSection(sel *goquery.Selection, kind core.SectionKind) (core.Section, bool) {
	if strings.TrimSpace(sel.Text()) == "" && sel.Find("img").Length() == 0 {
		return core.Section{}, false
	}
	content, err := goquery.OuterHtml(sel)
	if err != nil || strings.TrimSpace(content) == "" {
		return core.Section{}, false
	}

	section := core.Section{Kind: kind, Content: content}
	if kind == core.KindCode {
		section.Language = DetectLanguage(sel)
	}
	if title := sectionTitle(sel); title != "" {
		section.Title = title
	}
	return section, true
}

// sectionTitle pulls a title from the element's first heading child, if any.
func sectionTitle(sel *goquery.Selection) string {
	heading := sel.Find("h1, h2, h3, h4, h5, h6").First()
	return strings.TrimSpace(heading.Text())
}

// remainderSection collects what pass 1 left behind.
func remainderSection(doc *goquery.Document) (core.Section, bool) {
	body := doc.Find("body")
	inner, err := body.Html()
	if err != nil {
		return core.Section{}, false
	}
	inner = strings.TrimSpace(inner)
	if inner == "" || strings.TrimSpace(body.Text()) == "" {
		return core.Section{}, false
	}

	kind := core.KindText
	flat := strings.ToLower(strings.TrimSpace(body.Text()))
	for _, kw := range leadingKeywords {
		if strings.HasPrefix(flat, kw.prefix) {
			kind = kw.kind
			break
		}
	}
	return core.Section{Kind: kind, Content: inner}, true
}
