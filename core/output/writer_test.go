package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/coursepipe/core"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		name  string
		title string
		url   string
		want  string
	}{
		{
			name:  "plain title",
			title: "Intro to Go",
			want:  "intro-to-go",
		},
		{
			name:  "dangerous characters replaced",
			title: `Files: a/b\c*d?"e"`,
			want:  "files_-a_b_c_d__e",
		},
		{
			name:  "traversal stripped",
			title: "../../etc/passwd",
			want:  "etc_passwd",
		},
		{
			name:  "case normalized",
			title: "MiXeD CaSe",
			want:  "mixed-case",
		},
		{
			name:  "empty title falls back to URL path",
			title: "",
			url:   "https://learn.test/course/go/intro",
			want:  "course_go_intro",
		},
		{
			name: "everything empty",
			want: "untitled",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filename(tt.title, tt.url); got != tt.want {
				t.Errorf("Filename(%q, %q) = %q, want %q", tt.title, tt.url, got, tt.want)
			}
		})
	}
}

func TestFilename_LengthCap(t *testing.T) {
	got := Filename(strings.Repeat("a", 500), "")
	if len(got) != maxFilenameLen {
		t.Errorf("len = %d, want %d", len(got), maxFilenameLen)
	}
}

func TestWriter_Write(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	doc := &core.Document{Title: "My Page", URL: "https://learn.test/course/x/y"}
	path, err := w.Write(doc, []byte("content"), ".md")
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if filepath.Base(path) != "my-page.md" {
		t.Errorf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(data) != "content" {
		t.Errorf("file content = %q", data)
	}
}

func TestWriter_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	if _, err := New(dir); err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("output directory not created: %v", err)
	}
}
