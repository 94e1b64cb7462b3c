package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gaurav-prasanna/coursepipe/core"
)

func TestFetch_Success(t *testing.T) {
	var gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	f := New("session_id=abc; theme=dark")
	html, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if html != "<html><body>ok</body></html>" {
		t.Errorf("Fetch() = %q", html)
	}
	if gotCookie != "session_id=abc; theme=dark" {
		t.Errorf("credential not attached, Cookie = %q", gotCookie)
	}
}

func TestFetch_RateLimitRetriesOnce(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	f := New("session_id=abc", WithBackoff(0))
	html, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if html != "recovered" {
		t.Errorf("Fetch() = %q, want %q", html, "recovered")
	}
	if calls != 2 {
		t.Errorf("server calls = %d, want 2", calls)
	}
}

func TestFetch_RateLimitedTwiceSurfaces(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f := New("session_id=abc", WithBackoff(0))
	_, err := f.Fetch(context.Background(), srv.URL)

	var fetchErr *core.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Fetch() error = %v, want *core.FetchError", err)
	}
	if fetchErr.Kind != core.FetchRateLimited {
		t.Errorf("kind = %q, want %q", fetchErr.Kind, core.FetchRateLimited)
	}
	if calls != 2 {
		t.Errorf("server calls = %d, want exactly 2 (one retry)", calls)
	}
}

func TestFetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := New("session_id=abc")
	_, err := f.Fetch(context.Background(), srv.URL)

	var fetchErr *core.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Fetch() error = %v, want *core.FetchError", err)
	}
	if fetchErr.Kind != core.FetchHTTP || fetchErr.Status != http.StatusNotFound {
		t.Errorf("got kind=%q status=%d, want http/404", fetchErr.Kind, fetchErr.Status)
	}
}

func TestFetch_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	f := New("session_id=abc")
	_, err := f.Fetch(context.Background(), srv.URL)

	var fetchErr *core.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Fetch() error = %v, want *core.FetchError", err)
	}
	if fetchErr.Kind != core.FetchTransport {
		t.Errorf("kind = %q, want %q", fetchErr.Kind, core.FetchTransport)
	}
}

func TestFetch_BodyTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 64))
	}))
	defer srv.Close()

	f := New("session_id=abc", WithMaxBytes(16))
	if _, err := f.Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("Fetch() accepted oversized body")
	}
}
