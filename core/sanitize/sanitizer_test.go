package sanitize

import (
	"strings"
	"testing"
)

func TestSanitize_RemovesScripts(t *testing.T) {
	s := New()
	out, err := s.Sanitize(`<div><script>alert(1)</script><p>ok</p></div>`)
	if err != nil {
		t.Fatalf("Sanitize() error = %v", err)
	}
	if !strings.Contains(out, "<p>ok</p>") {
		t.Errorf("content lost: %q", out)
	}
	if strings.Contains(out, "script") || strings.Contains(out, "alert") {
		t.Errorf("script survived: %q", out)
	}
}

func TestSanitize_BlocklistRemovesSubtrees(t *testing.T) {
	s := New()
	tests := []struct {
		name  string
		html  string
		gone  string
		keeps string
	}{
		{
			name:  "nav with links",
			html:  `<nav><a href="/home">Home</a></nav><p>lesson</p>`,
			gone:  "Home",
			keeps: "lesson",
		},
		{
			name:  "style block",
			html:  `<style>.x{color:red}</style><p>text</p>`,
			gone:  "color",
			keeps: "text",
		},
		{
			name:  "sidebar class",
			html:  `<div class="sidebar"><p>menu</p></div><p>body</p>`,
			gone:  "menu",
			keeps: "body",
		},
		{
			name:  "footer",
			html:  `<footer>© 2026</footer><p>content</p>`,
			gone:  "2026",
			keeps: "content",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := s.Sanitize(tt.html)
			if err != nil {
				t.Fatalf("Sanitize() error = %v", err)
			}
			if strings.Contains(out, tt.gone) {
				t.Errorf("blocklisted content survived: %q", out)
			}
			if !strings.Contains(out, tt.keeps) {
				t.Errorf("content lost: %q", out)
			}
		})
	}
}

func TestSanitize_UnwrapsUnknownTags(t *testing.T) {
	s := New()
	out, err := s.Sanitize(`<section><article><p>kept</p></article></section>`)
	if err != nil {
		t.Fatalf("Sanitize() error = %v", err)
	}
	if strings.Contains(out, "<section") || strings.Contains(out, "<article") {
		t.Errorf("unknown tags not unwrapped: %q", out)
	}
	if !strings.Contains(out, "<p>kept</p>") {
		t.Errorf("children not kept: %q", out)
	}
}

func TestSanitize_KeepsClassesForClassifier(t *testing.T) {
	s := New()
	out, err := s.Sanitize(`<blockquote class="alert-warning"><p>careful</p></blockquote>`)
	if err != nil {
		t.Fatalf("Sanitize() error = %v", err)
	}
	if !strings.Contains(out, `class="alert-warning"`) {
		t.Errorf("class attribute lost: %q", out)
	}
}

func TestSanitize_PrunesEmptyElements(t *testing.T) {
	s := New()
	out, err := s.Sanitize(`<blockquote><span></span></blockquote><p>kept</p>`)
	if err != nil {
		t.Fatalf("Sanitize() error = %v", err)
	}
	if strings.Contains(out, "<blockquote") {
		t.Errorf("empty element not pruned: %q", out)
	}
	if !strings.Contains(out, "<p>kept</p>") {
		t.Errorf("content lost: %q", out)
	}
}

func TestSanitize_KeepsSelfClosingCarriers(t *testing.T) {
	s := New()
	out, err := s.Sanitize(`<p>a<br/>b</p><hr/><p><img src="/x.png" alt=""/></p>`)
	if err != nil {
		t.Fatalf("Sanitize() error = %v", err)
	}
	for _, want := range []string{"<br", "<hr", "<img"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in %q", want, out)
		}
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	s := New()
	inputs := []string{
		`<div><script>x()</script><p>ok</p></div>`,
		`<h1>T</h1><section><p>body &amp; soul</p></section>`,
		`<pre><code class="language-go">func main() {}</code></pre>`,
		`<table><tr><th>A</th></tr><tr><td>1</td></tr></table>`,
		`<ul><li>one</li><li><em>two</em></li></ul>`,
	}
	for _, input := range inputs {
		once, err := s.Sanitize(input)
		if err != nil {
			t.Fatalf("Sanitize() error = %v", err)
		}
		twice, err := s.Sanitize(once)
		if err != nil {
			t.Fatalf("Sanitize(Sanitize()) error = %v", err)
		}
		if once != twice {
			t.Errorf("not idempotent:\n once: %q\ntwice: %q", once, twice)
		}
	}
}

func TestSanitize_EmptyInput(t *testing.T) {
	s := New()
	out, err := s.Sanitize("")
	if err != nil {
		t.Fatalf("Sanitize() error = %v", err)
	}
	if strings.TrimSpace(out) != "" {
		t.Errorf("Sanitize(\"\") = %q, want empty", out)
	}
}
