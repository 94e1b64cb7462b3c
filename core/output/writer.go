// Package output handles file naming and writing for coursepipe documents.
// Filenames derive from the page title; a URL-derived fallback covers pages
// without one.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/coursepipe/core"
)

// maxFilenameLen caps the base filename (extension excluded).
const maxFilenameLen = 120

// Writer writes rendered documents to the output directory.
type Writer struct {
	OutputDir string
}

// New creates a Writer, ensuring the output directory exists.
// An empty outputDir defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Writer{OutputDir: outputDir}, nil
}

// Write stores one rendered format of a document and returns the path.
func (w *Writer) Write(doc *core.Document, data []byte, ext string) (string, error) {
	name := Filename(doc.Title, doc.URL)
	path := filepath.Join(w.OutputDir, name+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// Filename derives a safe base filename from a page title, falling back to
// the URL path when the title is empty. Dangerous filesystem characters are
// replaced, traversal sequences stripped, the result lowercased and capped.
func Filename(title, rawURL string) string {
	base := strings.TrimSpace(title)
	if base == "" {
		base = filenameFromURL(rawURL)
	}
	if base == "" {
		base = "untitled"
	}

	base = strings.ToLower(base)
	base = strings.ReplaceAll(base, "..", "")

	var b strings.Builder
	for _, ch := range base {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9', ch == '-', ch == '_':
			b.WriteRune(ch)
		case ch == ' ' || ch == '\t':
			b.WriteRune('-')
		default:
			b.WriteRune('_')
		}
	}

	name := strings.Trim(b.String(), "-_.")
	if name == "" {
		name = "untitled"
	}
	if len(name) > maxFilenameLen {
		name = name[:maxFilenameLen]
	}
	return name
}

// filenameFromURL joins the URL path segments with underscores.
func filenameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return parsed.Host
	}
	return strings.ReplaceAll(path, "/", "_")
}
