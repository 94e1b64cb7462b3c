package crawl

import "testing"

func TestQueue_Deduplicates(t *testing.T) {
	q := NewQueue()
	if !q.Add("https://learn.test/course/go/intro") {
		t.Fatal("first Add() rejected")
	}
	if q.Add("https://learn.test/course/go/intro") {
		t.Error("duplicate URL accepted")
	}
	// Normalized equivalents dedupe too.
	if q.Add("https://learn.test/course/go/intro/") {
		t.Error("trailing-slash variant accepted")
	}
	if q.Add("https://learn.test/course/go/intro#top") {
		t.Error("fragment variant accepted")
	}
	if q.Len() != 1 {
		t.Errorf("Len() = %d, want 1", q.Len())
	}
}

func TestQueue_FirstSeenOrder(t *testing.T) {
	q := NewQueue()
	urls := []string{
		"https://learn.test/course/go/1",
		"https://learn.test/course/go/2",
		"https://learn.test/course/go/3",
	}
	for _, u := range urls {
		q.Add(u)
	}
	q.Add(urls[0]) // re-add must not reorder

	for i, want := range urls {
		if !q.HasNext() {
			t.Fatalf("queue exhausted at %d", i)
		}
		if got := q.Next().URL; got != want {
			t.Errorf("item %d = %q, want %q", i, got, want)
		}
	}
	if q.HasNext() {
		t.Error("queue has extra items")
	}
}

func TestQueue_ItemStates(t *testing.T) {
	q := NewQueue()
	q.Add("https://learn.test/course/go/1")

	item := q.Next()
	if item.State != StateInFlight {
		t.Errorf("dequeued state = %q, want %q", item.State, StateInFlight)
	}
	item.State = StateDone
	if q.All()[0].State != StateDone {
		t.Errorf("state not shared with queue view")
	}
}

func TestQueue_Remaining(t *testing.T) {
	q := NewQueue()
	q.Add("https://learn.test/course/go/1")
	q.Add("https://learn.test/course/go/2")

	if q.Remaining() != 2 {
		t.Errorf("Remaining() = %d, want 2", q.Remaining())
	}
	q.Next()
	if q.Remaining() != 1 {
		t.Errorf("Remaining() = %d, want 1", q.Remaining())
	}
}
