// Package render — extended markdown renderer.
// Converts each classified section to markdown, wrapping callout-eligible
// kinds in callout blocks, fencing code with its detected language, and
// building pipe tables. Heading levels shift down one step so H1 stays
// reserved for the document title.
package render

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/coursepipe/core"
)

// MarkdownRenderer renders a Document as extended markdown.
type MarkdownRenderer struct {
	cfg  Config
	conv *converter.Converter
	now  func() time.Time // frontmatter timestamp source
}

// NewMarkdownRenderer creates a MarkdownRenderer for the given config.
func NewMarkdownRenderer(cfg Config) *MarkdownRenderer {
	return &MarkdownRenderer{
		cfg: cfg,
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		),
		now: time.Now,
	}
}

// Render converts the document into markdown bytes.
func (r *MarkdownRenderer) Render(doc *core.Document) ([]byte, error) {
	var b strings.Builder

	if r.cfg.Frontmatter {
		r.writeFrontmatter(&b, doc)
	}

	if doc.Title != "" {
		fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	}

	for _, section := range doc.Sections {
		md, err := r.renderSection(section)
		if err != nil {
			return nil, err
		}
		if md == "" {
			continue
		}
		b.WriteString(md)
		b.WriteString("\n\n")
	}

	return []byte(strings.TrimRight(b.String(), "\n") + "\n"), nil
}

// Extension returns the file extension for markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// renderSection dispatches on the section kind.
func (r *MarkdownRenderer) renderSection(section core.Section) (string, error) {
	switch section.Kind {
	case core.KindCode:
		return fencedCode(section), nil
	case core.KindTable:
		if r.cfg.PipeTables {
			return pipeTable(section.Content)
		}
		return strings.TrimSpace(section.Content), nil
	case core.KindText:
		return r.convert(section.Content)
	default:
		return r.renderClassified(section)
	}
}

// renderClassified renders a callout-eligible section.
func (r *MarkdownRenderer) renderClassified(section core.Section) (string, error) {
	md, err := r.convert(section.Content)
	if err != nil {
		return "", err
	}
	if md == "" {
		return "", nil
	}

	token, ok := r.cfg.calloutToken(section.Kind)
	if !r.cfg.Callouts || !ok {
		if section.Title != "" {
			return fmt.Sprintf("## %s\n\n%s", section.Title, md), nil
		}
		return md, nil
	}
	return calloutBlock(token, section.Title, md), nil
}

// convert turns an HTML fragment into markdown with headings shifted and
// image references rewritten.
func (r *MarkdownRenderer) convert(html string) (string, error) {
	md, err := r.conv.ConvertString(html)
	if err != nil {
		return "", &core.RenderError{Format: string(FormatMarkdown), Reason: err.Error()}
	}
	md = shiftHeadings(md)
	md = rewriteImages(md, r.cfg.EmbedImages)
	return strings.TrimSpace(md), nil
}

// calloutBlock wraps markdown in a callout, re-indenting every line with the
// continuation marker.
func calloutBlock(token, title, md string) string {
	var b strings.Builder
	b.WriteString("> [!" + token + "]")
	if title != "" {
		b.WriteString(" " + title)
	}
	for _, line := range strings.Split(strings.TrimRight(md, "\n"), "\n") {
		b.WriteString("\n")
		b.WriteString(strings.TrimRight("> "+line, " "))
	}
	return b.String()
}

// fencedCode emits a language-tagged fenced block from the section's code
// text. The fence is sized past the longest backtick run in the code so the
// content cannot close it early.
func fencedCode(section core.Section) string {
	code := strings.TrimRight(htmlText(section.Content), "\n")
	fence := strings.Repeat("`", max(3, longestBacktickRun(code)+1))
	return fence + section.Language + "\n" + code + "\n" + fence
}

// longestBacktickRun returns the length of the longest consecutive backtick
// run in s.
func longestBacktickRun(s string) int {
	longest, run := 0, 0
	for _, ch := range s {
		if ch != '`' {
			run = 0
			continue
		}
		run++
		if run > longest {
			longest = run
		}
	}
	return longest
}

// headingRe matches markdown headings up to H5; H6 cannot shift further down.
var headingRe = regexp.MustCompile(`(?m)^(#{1,5}) `)

// shiftHeadings demotes every heading one level (H1→H2, …), reserving H1
// for the document title.
func shiftHeadings(md string) string {
	return headingRe.ReplaceAllString(md, "#$1 ")
}

// mdImageRe matches standard markdown image syntax emitted by the converter.
var mdImageRe = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]+)(?:\s+"[^"]*")?\)`)

// rewriteImages converts image references to either embed form or a direct
// link, naming the reference from the final path segment of the source
// (defaulting to .png when the segment has no extension).
func rewriteImages(md string, embed bool) string {
	return mdImageRe.ReplaceAllStringFunc(md, func(match string) string {
		m := mdImageRe.FindStringSubmatch(match)
		name := imageName(m[2])
		if embed {
			return "![[" + name + "]]"
		}
		return "![" + name + "](" + m[2] + ")"
	})
}

// imageName derives the reference name from an image source URL.
func imageName(src string) string {
	src = strings.SplitN(src, "?", 2)[0]
	src = strings.SplitN(src, "#", 2)[0]
	segment := src
	if idx := strings.LastIndex(src, "/"); idx >= 0 {
		segment = src[idx+1:]
	}
	if segment == "" {
		segment = "image"
	}
	if !strings.Contains(segment, ".") {
		segment += ".png"
	}
	return segment
}

// writeFrontmatter prepends the metadata block. Key order is fixed so that
// output stays deterministic apart from the timestamp.
func (r *MarkdownRenderer) writeFrontmatter(b *strings.Builder, doc *core.Document) {
	b.WriteString("---\n")
	fmt.Fprintf(b, "title: %s\n", doc.Title)
	if doc.URL != "" {
		fmt.Fprintf(b, "source: %s\n", doc.URL)
	}
	if kinds := sectionKinds(doc); len(kinds) > 0 {
		fmt.Fprintf(b, "kinds: [%s]\n", strings.Join(kinds, ", "))
	}
	fmt.Fprintf(b, "created: %s\n", r.now().UTC().Format(time.RFC3339))
	b.WriteString("---\n\n")
}

// sectionKinds lists distinct section kinds in order of appearance.
func sectionKinds(doc *core.Document) []string {
	seen := make(map[core.SectionKind]bool)
	var kinds []string
	for _, s := range doc.Sections {
		if !seen[s.Kind] {
			seen[s.Kind] = true
			kinds = append(kinds, string(s.Kind))
		}
	}
	return kinds
}

// htmlText flattens an HTML fragment to its text content.
func htmlText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	return doc.Find("body").Text()
}
