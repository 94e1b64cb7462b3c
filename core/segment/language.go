// Package segment — code language detection.
// A class-name pattern is the authoritative signal; content heuristics are
// the fallback for unlabelled snippets.
package segment

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// classLanguageRe matches language hints like "language-go", "lang-python",
// "highlight-source-rb".
var classLanguageRe = regexp.MustCompile(`(?:language|lang|highlight(?:-source)?)-([A-Za-z0-9+#-]+)`)

// DetectLanguage determines the code language of a pre/code element.
// Returns "" when nothing matches.
func DetectLanguage(sel *goquery.Selection) string {
	if lang := languageFromClass(sel); lang != "" {
		return lang
	}
	return languageFromContent(sel.Text())
}

// languageFromClass inspects the element's class and its code child's class.
func languageFromClass(sel *goquery.Selection) string {
	candidates := []string{sel.AttrOr("class", "")}
	sel.Find("code").Each(func(_ int, code *goquery.Selection) {
		candidates = append(candidates, code.AttrOr("class", ""))
	})
	for _, class := range candidates {
		if m := classLanguageRe.FindStringSubmatch(class); m != nil {
			return strings.ToLower(m[1])
		}
	}
	return ""
}

var (
	pythonRe = regexp.MustCompile(`(?m)^\s*(?:def |class \w+.*:|from \w+ import |import \w+$)`)
	goRe     = regexp.MustCompile(`(?m)^\s*(?:package \w+|func \w+\(|import \()`)
	jsRe     = regexp.MustCompile(`(?m)(?:^\s*(?:const|let|var|function)\s|=>\s*{|console\.log)`)
	cRe      = regexp.MustCompile(`(?m)^\s*#include\s*[<"]`)
	sqlRe    = regexp.MustCompile(`(?is)\bSELECT\b.+\bFROM\b|\b(?:INSERT\s+INTO|CREATE\s+TABLE|UPDATE\s+\w+\s+SET)\b`)
	braceRe  = regexp.MustCompile(`[{};]`)
)

// languageFromContent guesses the language from the snippet itself.
func languageFromContent(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return ""
	}
	switch {
	case strings.HasPrefix(trimmed, "#!"):
		return "bash"
	case strings.HasPrefix(trimmed, "<?php"):
		return "php"
	case cRe.MatchString(trimmed):
		return "c"
	case goRe.MatchString(trimmed):
		return "go"
	case pythonRe.MatchString(trimmed):
		return "python"
	case sqlRe.MatchString(trimmed):
		return "sql"
	case jsRe.MatchString(trimmed):
		return "javascript"
	}
	// Brace-heavy syntax with no clearer signal reads as C-family.
	if len(braceRe.FindAllString(trimmed, -1)) >= 4 {
		return "c"
	}
	return ""
}
