// Package render — standalone HTML renderer.
// Wraps the sanitized section bodies in a minimal self-contained document
// with a fixed style block.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/gaurav-prasanna/coursepipe/core"
)

const htmlStyle = `body { font-family: Georgia, serif; max-width: 46em; margin: 2em auto; padding: 0 1em; line-height: 1.6; color: #222; }
h1, h2, h3 { line-height: 1.25; }
pre { background: #f5f5f5; padding: 1em; overflow-x: auto; }
code { font-family: "SF Mono", Consolas, monospace; font-size: 0.92em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.4em 0.7em; }
blockquote { border-left: 3px solid #ccc; margin-left: 0; padding-left: 1em; color: #555; }
img { max-width: 100%; }`

// HTMLRenderer renders a Document as a standalone HTML page.
type HTMLRenderer struct{}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Render wraps the document body in a standalone HTML page.
func (r *HTMLRenderer) Render(doc *core.Document) ([]byte, error) {
	var body strings.Builder
	for _, section := range doc.Sections {
		body.WriteString(section.Content)
		body.WriteString("\n")
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(doc.Title))
	fmt.Fprintf(&b, "<style>\n%s\n</style>\n</head>\n<body>\n", htmlStyle)
	if doc.Title != "" {
		fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(doc.Title))
	}
	b.WriteString(body.String())
	b.WriteString("</body>\n</html>\n")
	return []byte(b.String()), nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}
