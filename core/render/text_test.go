package render

import (
	"strings"
	"testing"

	"github.com/gaurav-prasanna/coursepipe/core"
)

func TestText_UnderlinedTitle(t *testing.T) {
	doc := &core.Document{
		Title: "Lesson One",
		Sections: []core.Section{
			{Kind: core.KindText, Content: "<p>first paragraph</p>"},
		},
	}
	data, err := NewTextRenderer().Render(doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := string(data)
	if !strings.HasPrefix(out, "Lesson One\n==========\n") {
		t.Errorf("title not underlined:\n%s", out)
	}
}

func TestText_StripsAllMarkup(t *testing.T) {
	doc := &core.Document{
		Sections: []core.Section{
			{Kind: core.KindText, Content: `<p><strong>bold</strong> and <a href="/x">link</a></p>`},
		},
	}
	data, err := NewTextRenderer().Render(doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := string(data)
	if strings.Contains(out, "<") {
		t.Errorf("markup survived:\n%s", out)
	}
	if !strings.Contains(out, "bold and link") {
		t.Errorf("text content lost:\n%s", out)
	}
}
