package timer

import (
	"context"
	"sync"
	"time"

	"github.com/viant/tickq/internal/idgen"
)

// Signal is a one-shot completion notification fired when a timer expires.
// Firing after the waiter has been dropped is a no-op.
type Signal struct {
	ch chan struct{}
}

// NewSignal returns an unfired signal.
func NewSignal() *Signal {
	return &Signal{ch: make(chan struct{}, 1)}
}

// Wait blocks until the signal fires or ctx is cancelled.
func (s *Signal) Wait(ctx context.Context) error {
	select {
	case <-s.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done exposes the underlying channel for use in select statements.
func (s *Signal) Done() <-chan struct{} {
	return s.ch
}

func (s *Signal) fire() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// entry tracks a single pending timer. Relative entries count remaining
// duration down; absolute entries compare against elapsed-since-start.
type entry struct {
	id        string
	remaining time.Duration
	deadline  time.Duration
	absolute  bool
	signal    *Signal
}

// Registry tracks countdown and deadline entries advanced once per tick.
// Entries are independent; each signal fires exactly once, at the first tick
// whose cumulative timing satisfies the entry, and is then removed.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// After registers a countdown that fires signal once subsequent per-tick
// deltas accumulate to at least d. It returns the entry id.
func (r *Registry) After(d time.Duration, signal *Signal) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := idgen.New()
	r.entries[id] = &entry{id: id, remaining: d, signal: signal}
	return id
}

// At registers a deadline that fires signal once the tick clock's monotonic
// elapsed time reaches deadline. It returns the entry id.
func (r *Registry) At(deadline time.Duration, signal *Signal) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := idgen.New()
	r.entries[id] = &entry{id: id, deadline: deadline, absolute: true, signal: signal}
	return id
}

// Cancel removes a pending entry without firing it. It reports whether the
// entry was still pending.
func (r *Registry) Cancel(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return false
	}
	delete(r.entries, id)
	return true
}

// Advance moves every entry one tick forward: delta is the tick's elapsed
// real time, elapsed the monotonic time since the clock started. Expired
// entries are fired and removed. It returns the number of fired entries.
func (r *Registry) Advance(delta, elapsed time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	fired := 0
	for id, e := range r.entries {
		if e.absolute {
			if elapsed < e.deadline {
				continue
			}
		} else {
			e.remaining -= delta
			if e.remaining > 0 {
				continue
			}
		}
		e.signal.fire()
		delete(r.entries, id)
		fired++
	}
	return fired
}

// Len returns the number of pending entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
