// Package render provides output renderers for the coursepipe pipeline.
// This file defines the render configuration and the format registry.
package render

import (
	"fmt"

	"github.com/gaurav-prasanna/coursepipe/core"
)

// Format identifies an output format.
type Format string

// Supported output formats.
const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatText     Format = "text"
	FormatPDF      Format = "pdf"
)

// Config selects output behavior for a run. It is immutable once a run
// starts; renderers are pure functions of (Document, Config).
type Config struct {
	// Formats lists the formats to produce. At least one is required.
	Formats []Format
	// Callouts enables callout-block rendering of classified sections in
	// markdown output. Default: true.
	Callouts bool
	// CalloutTokens maps section kinds to callout type tokens. Missing
	// entries fall back to the defaults; code/table/text never use callouts.
	CalloutTokens map[core.SectionKind]string
	// EmbedImages renders images as ![[name]] embeds instead of links.
	EmbedImages bool
	// PipeTables renders tables as pipe tables with a separator row built
	// from the first row's cell count. When false the sanitized table HTML
	// is kept inline. Default: true.
	PipeTables bool
	// Frontmatter prepends a metadata block to markdown output. The block
	// carries the only clock-derived value a renderer may produce.
	Frontmatter bool
}

// DefaultConfig returns the default render configuration: markdown output
// with callouts and pipe tables.
func DefaultConfig() Config {
	return Config{
		Formats:       []Format{FormatMarkdown},
		Callouts:      true,
		CalloutTokens: DefaultCalloutTokens(),
		PipeTables:    true,
	}
}

// DefaultCalloutTokens is the fixed kind-to-token table, overridable via
// Config.CalloutTokens.
func DefaultCalloutTokens() map[core.SectionKind]string {
	return map[core.SectionKind]string{
		core.KindNote:     "note",
		core.KindWarning:  "warning",
		core.KindExample:  "example",
		core.KindInfo:     "info",
		core.KindAbstract: "abstract",
		core.KindTip:      "tip",
	}
}

// calloutToken resolves the token for a kind, falling back to the defaults.
func (c Config) calloutToken(kind core.SectionKind) (string, bool) {
	if tok, ok := c.CalloutTokens[kind]; ok {
		return tok, true
	}
	tok, ok := DefaultCalloutTokens()[kind]
	return tok, ok
}

// ParseFormat converts a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatMarkdown, FormatHTML, FormatText, FormatPDF:
		return Format(name), nil
	case "md":
		return FormatMarkdown, nil
	case "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q", name)
	}
}

// Renderers builds one renderer per configured format.
func Renderers(cfg Config) ([]core.Renderer, error) {
	if len(cfg.Formats) == 0 {
		return nil, &core.RenderError{Format: "", Reason: "no output formats configured"}
	}
	renderers := make([]core.Renderer, 0, len(cfg.Formats))
	for _, f := range cfg.Formats {
		switch f {
		case FormatMarkdown:
			renderers = append(renderers, NewMarkdownRenderer(cfg))
		case FormatHTML:
			renderers = append(renderers, NewHTMLRenderer())
		case FormatText:
			renderers = append(renderers, NewTextRenderer())
		case FormatPDF:
			renderers = append(renderers, NewPDFRenderer(cfg))
		default:
			return nil, &core.RenderError{Format: string(f), Reason: "unknown format"}
		}
	}
	return renderers, nil
}
