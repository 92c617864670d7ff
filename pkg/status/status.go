// Package status reports the progress of a run on a single terminal line.
package status

import "sync"

// State is the lifecycle state of a reporter
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// Terminal returns true for succeeded and failed
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// Reporter is a progress indicator with at most one terminal transition.
// Succeed and Fail write their final line before returning, and calls after
// the first terminal transition are ignored.
type Reporter interface {
	Start(message string)
	Succeed(message string)
	Fail(label string)
	State() State
}

// guard enforces the single terminal transition shared by all reporters
type guard struct {
	mu    sync.Mutex
	state State
}

func (g *guard) start() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state.Terminal() || g.state == StateRunning {
		return false
	}
	g.state = StateRunning
	return true
}

func (g *guard) finish(to State) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state.Terminal() {
		return false
	}
	g.state = to
	return true
}

func (g *guard) current() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == "" {
		return StateIdle
	}
	return g.state
}
