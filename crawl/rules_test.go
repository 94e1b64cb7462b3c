package crawl

import "testing"

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://learn.test/course/go/", "https://learn.test/course/go"},
		{"https://learn.test/course/go#anchor", "https://learn.test/course/go"},
		{"https://learn.test/", "https://learn.test/"},
		{"https://learn.test/a?x=1", "https://learn.test/a?x=1"},
	}
	for _, tt := range tests {
		if got := NormalizeURL(tt.in); got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSameHost(t *testing.T) {
	if !SameHost("https://learn.test/x", "learn.test") {
		t.Error("same host rejected")
	}
	if SameHost("https://evil.test/x", "learn.test") {
		t.Error("foreign host accepted")
	}
}

func TestIsCourseURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://learn.test/course/go-101", true},
		{"https://learn.test/module/course/go-101", true},
		{"https://learn.test/course/go-101/intro", false},
		{"https://learn.test/course", false},
		{"https://learn.test/about", false},
	}
	for _, tt := range tests {
		if got := IsCourseURL(tt.url); got != tt.want {
			t.Errorf("IsCourseURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}
