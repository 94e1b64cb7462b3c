package render

import (
	"strings"
	"testing"

	"github.com/gaurav-prasanna/coursepipe/core"
)

func TestHTML_StandaloneDocument(t *testing.T) {
	doc := &core.Document{
		Title: "A <Course> Page",
		Sections: []core.Section{
			{Kind: core.KindText, Content: "<p>body text</p>"},
			{Kind: core.KindCode, Content: "<pre><code>x</code></pre>"},
		},
	}
	data, err := NewHTMLRenderer().Render(doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := string(data)

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>A &lt;Course&gt; Page</title>",
		"<style>",
		"<h1>A &lt;Course&gt; Page</h1>",
		"<p>body text</p>",
		"<pre><code>x</code></pre>",
		"</html>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestHTML_Extension(t *testing.T) {
	if got := NewHTMLRenderer().Extension(); got != ".html" {
		t.Errorf("Extension() = %q", got)
	}
}
