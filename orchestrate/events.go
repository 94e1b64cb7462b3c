// Package orchestrate — progress events.
// A single typed channel carries every observable outcome of a run, so
// ordering and completion are visible without subscription races.
package orchestrate

// EventStatus identifies what an event reports.
type EventStatus string

// Event statuses.
const (
	StatusDownloading  EventStatus = "downloading"
	StatusProcessing   EventStatus = "processing"
	StatusCompleted    EventStatus = "completed"
	StatusError        EventStatus = "error"
	StatusCircuitOpen  EventStatus = "circuit-open"
	StatusRunCompleted EventStatus = "run-completed"
)

// Event is one progress update. Per-item events carry Current/Total/URL;
// the terminal run-completed event carries the run totals.
type Event struct {
	Status   EventStatus
	Current  int
	Total    int
	URL      string
	Filename string
	Err      string

	// Run totals, set on run-completed (and circuit-open for Failed).
	Processed int
	Failed    int
}
