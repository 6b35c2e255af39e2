package model

import "sync"

// State describes where a download currently stands.
type State int

const (
	StateIdle State = iota
	StateDownloading
	StateDone
	StateFailed
)

// Status is a shared observable download state. It is passed by reference to
// whichever components need to react to download progress (the caller of
// Download is informed through its own callback as well; Status exists for
// observers that did not initiate the download). Safe for concurrent use.
type Status struct {
	mu       sync.Mutex
	state    State
	asset    string
	fraction float64
	err      error
}

// NewStatus creates an idle Status.
func NewStatus() *Status {
	return &Status{}
}

// Snapshot returns the current state, active asset name, fractional
// progress and last error.
func (s *Status) Snapshot() (State, string, float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.asset, s.fraction, s.err
}

// Reset returns the status to idle, clearing any previous error.
func (s *Status) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
	s.asset = ""
	s.fraction = 0
	s.err = nil
}

func (s *Status) begin(asset string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateDownloading
	s.asset = asset
	s.fraction = 0
	s.err = nil
}

func (s *Status) update(fraction float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fraction > s.fraction {
		s.fraction = fraction
	}
}

func (s *Status) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateDone
	s.fraction = 1
}

func (s *Status) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateFailed
	s.err = err
}
