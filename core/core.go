// Package core defines the pipeline types and interfaces for coursepipe.
// Each stage of the pipeline is a clean, testable interface.
package core

import "context"

// SectionKind classifies a content section.
type SectionKind string

// Section kinds, in the order the classifier prefers them.
const (
	KindNote     SectionKind = "note"
	KindWarning  SectionKind = "warning"
	KindExample  SectionKind = "example"
	KindInfo     SectionKind = "info"
	KindAbstract SectionKind = "abstract"
	KindTip      SectionKind = "tip"
	KindCode     SectionKind = "code"
	KindTable    SectionKind = "table"
	KindText     SectionKind = "text"
)

// Section is a classified, self-contained fragment of a page's content.
// Content is always a sanitized HTML fragment and is never empty.
type Section struct {
	Kind     SectionKind
	Content  string
	Language string // detected code language, set only for KindCode
	Title    string // optional section title
}

// Document is the result of running the pipeline for one URL.
type Document struct {
	Title    string
	URL      string
	Sections []Section
}

// Fetcher retrieves raw HTML from a URL, attaching the configured credential.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Sanitizer reduces raw HTML to the allow-listed content subset.
type Sanitizer interface {
	Sanitize(html string) (string, error)
}

// Segmenter partitions sanitized HTML into ordered classified sections.
type Segmenter interface {
	Segment(cleanHTML string) ([]Section, error)
}

// Renderer converts a Document into a final output format.
type Renderer interface {
	Render(doc *Document) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".html").
	Extension() string
}
