// Package render — plain-text renderer.
package render

import (
	"strings"

	"github.com/gaurav-prasanna/coursepipe/core"
)

// TextRenderer strips all markup and renders the document as plain text,
// with the title as an underlined heading.
type TextRenderer struct{}

// NewTextRenderer creates a TextRenderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// Render flattens every section to text.
func (r *TextRenderer) Render(doc *core.Document) ([]byte, error) {
	var b strings.Builder
	if doc.Title != "" {
		b.WriteString(doc.Title + "\n")
		b.WriteString(strings.Repeat("=", len([]rune(doc.Title))) + "\n\n")
	}
	for _, section := range doc.Sections {
		text := collapseBlankLines(htmlText(section.Content))
		if text == "" {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	}
	return []byte(strings.TrimRight(b.String(), "\n") + "\n"), nil
}

// Extension returns the file extension for plain-text output.
func (r *TextRenderer) Extension() string {
	return ".txt"
}

// collapseBlankLines trims each line and folds runs of blank lines.
func collapseBlankLines(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	blank := true
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
