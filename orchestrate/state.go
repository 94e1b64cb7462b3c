// Package orchestrate — run state machine.
// The status cell is the single point of coordination between the processing
// loop and the external control methods, so every access goes through the
// mutex-guarded accessors.
package orchestrate

import "sync"

// Status is the orchestrator lifecycle state.
type Status string

// Lifecycle states: idle → running ⇄ paused, running|paused → stopping →
// stopped, stopped → idle.
const (
	StatusIdle     Status = "idle"
	StatusRunning  Status = "running"
	StatusPaused   Status = "paused"
	StatusStopping Status = "stopping"
	StatusStopped  Status = "stopped"
)

// stateCell is a guarded status holder. The processing loop is the single
// writer of the counters; control methods only transition the status.
type stateCell struct {
	mu     sync.Mutex
	status Status
}

func newStateCell() *stateCell {
	return &stateCell{status: StatusIdle}
}

func (s *stateCell) get() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *stateCell) set(status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// transition moves to "to" only when the current status is one of "from".
// Reports whether the transition happened.
func (s *stateCell) transition(to Status, from ...Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range from {
		if s.status == f {
			s.status = to
			return true
		}
	}
	return false
}

// Summary is a point-in-time view of the run state.
type Summary struct {
	Status    Status
	Total     int
	Processed int
	Failed    int
	Remaining int
}
