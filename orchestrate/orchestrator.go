// Package orchestrate drives the download pipeline across a work queue.
//
// One logical worker per run: items are processed strictly in order, with an
// inter-request delay, a pause/resume/stop state machine, and a circuit
// breaker that halts the run after too many consecutive failures. Control
// methods are safe to call from outside the loop at any time; stopping is
// cooperative and never interrupts an in-flight item.
package orchestrate

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/coursepipe/config"
	"github.com/gaurav-prasanna/coursepipe/core"
	"github.com/gaurav-prasanna/coursepipe/core/fetch"
	"github.com/gaurav-prasanna/coursepipe/core/output"
	"github.com/gaurav-prasanna/coursepipe/core/render"
	"github.com/gaurav-prasanna/coursepipe/core/sanitize"
	"github.com/gaurav-prasanna/coursepipe/core/segment"
	"github.com/gaurav-prasanna/coursepipe/crawl"
)

// eventBuffer sizes the progress channel. Consumers are expected to drain
// Events(); the buffer only smooths bursts.
const eventBuffer = 16

// Orchestrator owns the work queue and the run state machine.
type Orchestrator struct {
	cfg       config.RunConfig
	fetcher   core.Fetcher
	sanitizer core.Sanitizer
	segmenter core.Segmenter
	renderers []core.Renderer
	writer    *output.Writer

	state  *stateCell
	events chan Event

	mu          sync.Mutex // guards the counters below
	total       int
	processed   int
	failed      int
	consecutive int
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithFetcher substitutes the HTTP fetcher (used by tests and callers with
// custom transports).
func WithFetcher(f core.Fetcher) Option {
	return func(o *Orchestrator) { o.fetcher = f }
}

// New creates an Orchestrator in the idle state.
func New(cfg config.RunConfig, opts ...Option) *Orchestrator {
	cfg.Defaults()
	o := &Orchestrator{
		cfg:   cfg,
		state: newStateCell(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Start validates the run input, enters the running state, and launches the
// processing loop. Only valid from idle. Validation failures are returned
// before any network activity.
func (o *Orchestrator) Start(ctx context.Context, urls []string) error {
	if o.state.get() != StatusIdle {
		return &core.ValidationError{Field: "state", Reason: "a run is already in progress"}
	}
	if err := o.cfg.Validate(urls); err != nil {
		return err
	}

	renderers, err := render.Renderers(o.cfg.Render)
	if err != nil {
		return err
	}
	writer, err := output.New(o.cfg.OutputDir)
	if err != nil {
		return err
	}

	o.renderers = renderers
	o.writer = writer
	o.sanitizer = sanitize.New()
	o.segmenter = segment.New()
	if o.fetcher == nil {
		o.fetcher = fetch.New(o.cfg.Credential)
	}

	o.mu.Lock()
	o.total, o.processed, o.failed, o.consecutive = 0, 0, 0, 0
	o.mu.Unlock()
	o.events = make(chan Event, eventBuffer)

	if !o.state.transition(StatusRunning, StatusIdle) {
		return &core.ValidationError{Field: "state", Reason: "a run is already in progress"}
	}
	go o.run(ctx, urls)
	return nil
}

// Pause suspends dequeuing. In-flight work is not abandoned.
func (o *Orchestrator) Pause() {
	o.state.transition(StatusPaused, StatusRunning)
}

// Resume continues a paused run.
func (o *Orchestrator) Resume() {
	o.state.transition(StatusRunning, StatusPaused)
}

// Stop requests a halt. The loop exits after the current item finishes.
func (o *Orchestrator) Stop() {
	o.state.transition(StatusStopping, StatusRunning, StatusPaused)
}

// Events returns the progress channel for the current run. The channel is
// closed when the run ends; callers must drain it.
func (o *Orchestrator) Events() <-chan Event {
	return o.events
}

// Status returns a point-in-time summary of the run state.
func (o *Orchestrator) Status() Summary {
	o.mu.Lock()
	defer o.mu.Unlock()
	return Summary{
		Status:    o.state.get(),
		Total:     o.total,
		Processed: o.processed,
		Failed:    o.failed,
		Remaining: o.total - o.processed - o.failed,
	}
}

// run is the processing loop. It owns the queue and is the single writer of
// the counters.
func (o *Orchestrator) run(ctx context.Context, urls []string) {
	log := o.cfg.Logger
	queue := crawl.NewQueue()
	tripped := false

	// Expand course URLs into their section pages; everything else
	// enqueues as itself. Queue set semantics deduplicate across both.
	for _, raw := range urls {
		if !crawl.IsCourseURL(raw) {
			queue.Add(raw)
			continue
		}
		sections, err := crawl.ExpandCourse(ctx, o.fetcher, raw)
		if err != nil {
			log.Warn("course expansion failed", "url", raw, "error", err)
			o.recordFailure()
			o.emit(Event{Status: StatusError, URL: raw, Err: err.Error()})
			if tripped = o.breakerTripped(); tripped {
				break
			}
			continue
		}
		for _, section := range sections {
			queue.Add(section)
		}
	}

	total := queue.Len()
	o.mu.Lock()
	o.total = total
	o.mu.Unlock()
	log.Info("run started", "items", total)

	for !tripped {
		if o.waitWhilePaused() {
			break // stop requested
		}
		if !queue.HasNext() {
			break
		}

		item := queue.Next()
		current := total - queue.Remaining()

		o.emit(Event{Status: StatusDownloading, Current: current, Total: total, URL: item.URL})
		filename, err := o.process(ctx, item, current, total)
		if err != nil {
			item.State = crawl.StateFailed
			o.recordFailure()
			log.Warn("item failed", "url", item.URL, "error", err)
			o.emit(Event{Status: StatusError, Current: current, Total: total, URL: item.URL, Err: err.Error()})
			tripped = o.breakerTripped()
		} else {
			item.State = crawl.StateDone
			o.recordSuccess()
			log.Info("item completed", "url", item.URL, "file", filename)
			o.emit(Event{Status: StatusCompleted, Current: current, Total: total, URL: item.URL, Filename: filename})
		}

		if !tripped && o.cfg.RequestDelay > 0 && queue.HasNext() {
			select {
			case <-time.After(o.cfg.RequestDelay):
			case <-ctx.Done():
				o.state.set(StatusStopping)
			}
		}
	}

	o.finish(queue, tripped)
}

// finish emits the terminal events and resets the machine to idle.
func (o *Orchestrator) finish(queue *crawl.Queue, tripped bool) {
	o.mu.Lock()
	processed, failed, consecutive := o.processed, o.failed, o.consecutive
	o.mu.Unlock()
	remaining := queue.Remaining()

	if tripped {
		o.state.set(StatusStopped)
		err := &core.CircuitOpenError{Failures: consecutive}
		o.cfg.Logger.Error("circuit breaker tripped", "failures", consecutive)
		o.emit(Event{Status: StatusCircuitOpen, Err: err.Error(), Processed: processed, Failed: failed + remaining})
	} else {
		o.state.set(StatusStopped)
	}

	o.cfg.Logger.Info("run completed", "processed", processed, "failed", failed, "remaining", remaining)
	o.emit(Event{Status: StatusRunCompleted, Processed: processed, Failed: failed + remaining})
	o.state.set(StatusIdle)
	close(o.events)
}

// waitWhilePaused blocks while the run is paused, polling at the configured
// interval. Reports true when a stop was requested.
func (o *Orchestrator) waitWhilePaused() bool {
	for {
		switch o.state.get() {
		case StatusPaused:
			time.Sleep(o.cfg.PausePoll)
		case StatusStopping:
			return true
		default:
			return false
		}
	}
}

// process runs one item through fetch → sanitize → segment → render → write.
// Returns the filename of the first written format.
func (o *Orchestrator) process(ctx context.Context, item *crawl.WorkItem, current, total int) (string, error) {
	raw, err := o.fetcher.Fetch(ctx, item.URL)
	if err != nil {
		return "", err
	}

	o.emit(Event{Status: StatusProcessing, Current: current, Total: total, URL: item.URL})

	clean, err := o.sanitizer.Sanitize(raw)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(clean) == "" {
		return "", &core.ExtractionError{URL: item.URL}
	}

	sections, err := o.segmenter.Segment(clean)
	if err != nil {
		return "", err
	}
	if len(sections) == 0 {
		return "", &core.ExtractionError{URL: item.URL}
	}

	doc := &core.Document{
		Title:    pageTitle(raw),
		URL:      item.URL,
		Sections: sections,
	}

	var filename string
	for _, renderer := range o.renderers {
		data, err := renderer.Render(doc)
		if err != nil {
			return "", err
		}
		path, err := o.writer.Write(doc, data, renderer.Extension())
		if err != nil {
			return "", err
		}
		if filename == "" {
			filename = filepath.Base(path)
		}
	}
	return filename, nil
}

// recordFailure bumps the failure counters.
func (o *Orchestrator) recordFailure() {
	o.mu.Lock()
	o.failed++
	o.consecutive++
	o.mu.Unlock()
}

// recordSuccess bumps the processed count and resets the failure streak.
func (o *Orchestrator) recordSuccess() {
	o.mu.Lock()
	o.processed++
	o.consecutive = 0
	o.mu.Unlock()
}

// breakerTripped reports whether the consecutive-failure threshold was hit.
func (o *Orchestrator) breakerTripped() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.consecutive >= o.cfg.FailureThreshold
}

// emit sends an event to the consumer.
func (o *Orchestrator) emit(ev Event) {
	o.events <- ev
}

// pageTitle extracts the document title from the raw page, preferring
// <title> over the first heading.
func pageTitle(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}
