package crawl

import (
	"context"
	"errors"
	"testing"
)

// fetchFunc adapts a function to the core.Fetcher interface.
type fetchFunc func(ctx context.Context, url string) (string, error)

func (f fetchFunc) Fetch(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}

func TestExpandCourse_FindsSectionLinks(t *testing.T) {
	coursePage := `<html><body>
		<a href="/course/go-101/intro">Intro</a>
		<a href="https://learn.test/course/go-101/setup">Setup</a>
		<a href="/course/go-101/intro">Intro again</a>
		<a href="/course/other/lesson">Other course</a>
		<a href="https://evil.test/course/go-101/phish">External</a>
		<a href="/about">About</a>
		<a href="#top">Anchor</a>
		<a href="mailto:help@learn.test">Mail</a>
	</body></html>`

	fetcher := fetchFunc(func(_ context.Context, url string) (string, error) {
		return coursePage, nil
	})

	got, err := ExpandCourse(context.Background(), fetcher, "https://learn.test/course/go-101")
	if err != nil {
		t.Fatalf("ExpandCourse() error = %v", err)
	}

	want := []string{
		"https://learn.test/course/go-101/intro",
		"https://learn.test/course/go-101/setup",
	}
	if len(got) != len(want) {
		t.Fatalf("got %d URLs %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("url %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExpandCourse_NoLinks(t *testing.T) {
	fetcher := fetchFunc(func(_ context.Context, url string) (string, error) {
		return "<html><body><p>empty course</p></body></html>", nil
	})
	got, err := ExpandCourse(context.Background(), fetcher, "https://learn.test/course/empty")
	if err != nil {
		t.Fatalf("ExpandCourse() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want none", got)
	}
}

func TestExpandCourse_FetchError(t *testing.T) {
	fetcher := fetchFunc(func(_ context.Context, url string) (string, error) {
		return "", errors.New("boom")
	})
	if _, err := ExpandCourse(context.Background(), fetcher, "https://learn.test/course/x"); err == nil {
		t.Fatal("expected error")
	}
}
