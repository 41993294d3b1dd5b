// Package focus defers clipboard side effects until the host window holds
// input focus. Browser-style clipboard-write permission is typically only
// granted while the document is focused, so remote-originated writes are
// buffered here instead of being dropped.
package focus

import (
	"log/slog"
	"sync"
)

// State reports whether the host window currently has input focus.
type State interface {
	Focused() bool
}

// Always is a State that always reports focus. Useful for headless hosts
// where no focus notion exists.
type Always struct{}

func (Always) Focused() bool { return true }

// Gate queues deferred actions while the window is unfocused and drains them,
// in arrival order, when focus returns.
type Gate struct {
	state State

	mu      sync.Mutex
	pending []func()
}

// NewGate returns a Gate consulting state for the current focus.
func NewGate(state State) *Gate {
	return &Gate{state: state}
}

// RunWhenFocused executes action immediately if the window has focus,
// otherwise appends it to the pending queue for the next focus gain.
func (g *Gate) RunWhenFocused(action func()) {
	if g.state.Focused() {
		action()
		return
	}
	g.mu.Lock()
	g.pending = append(g.pending, action)
	g.mu.Unlock()
}

// FocusGained drains the queue in FIFO order, each action exactly once. A
// panicking action does not halt draining of the remaining entries. Actions
// queued while draining is in progress run on the next focus gain, not this
// one.
func (g *Gate) FocusGained() {
	g.mu.Lock()
	queued := g.pending
	g.pending = nil
	g.mu.Unlock()

	for _, action := range queued {
		runIsolated(action)
	}
}

// Pending returns the number of queued actions.
func (g *Gate) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending)
}

func runIsolated(action func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("deferred clipboard action panicked", "panic", r)
		}
	}()
	action()
}
