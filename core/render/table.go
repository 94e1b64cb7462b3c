// Package render — pipe-table conversion.
package render

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/coursepipe/core"
)

// pipeTable converts a sanitized <table> fragment into a markdown pipe table.
// The separator row is sized from the first row's cell count; rows with a
// different cell count are emitted as-is.
func pipeTable(tableHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(tableHTML))
	if err != nil {
		return "", &core.RenderError{Format: string(FormatMarkdown), Reason: "parsing table: " + err.Error()}
	}

	var rows [][]string
	doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, cellText(cell))
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})
	if len(rows) == 0 {
		return "", &core.RenderError{Format: string(FormatMarkdown), Reason: "table has no rows"}
	}

	var b strings.Builder
	writeRow(&b, rows[0])
	separator := make([]string, len(rows[0]))
	for i := range separator {
		separator[i] = "---"
	}
	writeRow(&b, separator)
	for _, row := range rows[1:] {
		writeRow(&b, row)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
}

// cellText flattens a cell, collapsing internal whitespace and escaping
// pipes so the cell cannot break the table.
func cellText(cell *goquery.Selection) string {
	text := strings.Join(strings.Fields(cell.Text()), " ")
	return strings.ReplaceAll(text, "|", "\\|")
}
