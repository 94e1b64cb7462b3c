// Package render — PDF renderer.
// Renders the document through the plain markdown path and typesets the
// result with gofpdf: headings at stepped sizes, monospaced code blocks,
// bulleted lists, plain paragraphs. Images are not embedded.
package render

import (
	"bytes"
	"regexp"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/coursepipe/core"
)

// pdfCreationDate pins the /CreationDate metadata field. gofpdf stamps the
// wall clock when none is set, which would make identical documents render
// to different bytes.
var pdfCreationDate = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// PDFRenderer renders a Document as a styled PDF.
type PDFRenderer struct {
	md *MarkdownRenderer
}

// NewPDFRenderer creates a PDFRenderer. Callouts and frontmatter are forced
// off on the internal markdown pass; PDF has no syntax for either.
func NewPDFRenderer(cfg Config) *PDFRenderer {
	cfg.Callouts = false
	cfg.Frontmatter = false
	cfg.EmbedImages = false
	return &PDFRenderer{md: NewMarkdownRenderer(cfg)}
}

// Render converts the document into PDF bytes.
func (r *PDFRenderer) Render(doc *core.Document) ([]byte, error) {
	mdBytes, err := r.md.Render(doc)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(pdfCreationDate)
	pdf.SetModificationDate(pdfCreationDate)
	pdf.SetCatalogSort(true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	if doc.Title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, doc.Title, "", "L", false)
		pdf.Ln(4)
	}
	if doc.URL != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, "Source: "+doc.URL, "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}

	writeBody(pdf, string(mdBytes), doc.Title)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &core.RenderError{Format: string(FormatPDF), Reason: err.Error()}
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

var numberedItemRe = regexp.MustCompile(`^\d+\.\s`)

// writeBody typesets markdown line by line. The document title heading is
// skipped since the title was already typeset above.
func writeBody(pdf *gofpdf.Fpdf, markdown string, title string) {
	inCode := false
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inCode = !inCode
			pdf.Ln(2)
			continue
		}
		if inCode {
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			pdf.MultiCell(0, 4.5, line, "", "L", true)
			continue
		}
		if trimmed == "" {
			pdf.Ln(3)
			continue
		}

		if strings.HasPrefix(trimmed, "#") {
			level := 0
			for _, ch := range trimmed {
				if ch != '#' {
					break
				}
				level++
			}
			text := strings.TrimSpace(strings.TrimLeft(trimmed, "# "))
			if level == 1 && text == title {
				continue
			}
			writePDFHeading(pdf, text, level)
			continue
		}

		if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, "• "+stripInline(trimmed[2:]), "", "L", false)
			continue
		}
		if numberedItemRe.MatchString(trimmed) {
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, stripInline(trimmed), "", "L", false)
			continue
		}

		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, stripInline(line), "", "L", false)
	}
}

// writePDFHeading chooses the font size from the heading level.
func writePDFHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, stripInline(text), "", "L", false)
	pdf.Ln(2)
}

var (
	italicRe     = regexp.MustCompile(`(?:^|\s)\*([^*]+)\*(?:\s|$)`)
	inlineCodeRe = regexp.MustCompile("`([^`]+)`")
	mdLinkRe     = regexp.MustCompile(`\[([^\]]*)\]\([^)]+\)`)
)

// stripInline removes inline markdown formatting for PDF text.
func stripInline(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "__", "")
	text = italicRe.ReplaceAllString(text, " $1 ")
	text = inlineCodeRe.ReplaceAllString(text, "$1")
	text = mdLinkRe.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
