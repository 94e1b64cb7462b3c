// Package crawl — work queue with deduplication.
// The queue holds one WorkItem per normalized URL; adding a URL twice is a
// no-op, which gives the run its set semantics.
package crawl

// ItemState tracks the resolution of a WorkItem.
type ItemState string

// WorkItem lifecycle states.
const (
	StatePending  ItemState = "pending"
	StateInFlight ItemState = "in-flight"
	StateDone     ItemState = "done"
	StateFailed   ItemState = "failed"
)

// WorkItem is one unit of orchestrator-managed work: a URL and its state.
type WorkItem struct {
	URL   string
	State ItemState
}

// Queue is an ordered work queue with normalized-URL set semantics.
type Queue struct {
	items []*WorkItem
	seen  map[string]bool
	idx   int // next dequeue position
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{seen: make(map[string]bool)}
}

// Add enqueues a URL as pending unless its normalized form was seen before.
// Reports whether the URL was actually added.
func (q *Queue) Add(url string) bool {
	normalized := NormalizeURL(url)
	if q.seen[normalized] {
		return false
	}
	q.seen[normalized] = true
	q.items = append(q.items, &WorkItem{URL: normalized, State: StatePending})
	return true
}

// HasNext reports whether an unprocessed item remains.
func (q *Queue) HasNext() bool {
	return q.idx < len(q.items)
}

// Next dequeues the next item and marks it in-flight.
func (q *Queue) Next() *WorkItem {
	item := q.items[q.idx]
	q.idx++
	item.State = StateInFlight
	return item
}

// Len returns the total number of queued items.
func (q *Queue) Len() int {
	return len(q.items)
}

// Remaining returns the number of items not yet dequeued.
func (q *Queue) Remaining() int {
	return len(q.items) - q.idx
}

// All returns the queued items in first-seen order.
func (q *Queue) All() []*WorkItem {
	return q.items
}
