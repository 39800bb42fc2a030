package tickq

import (
	"sync"
	"time"
)

// nowFunc returns current time. Override in tests for determinism.
var nowFunc = time.Now

// TickClock reports, once per step, how much real time the tick covers and
// the monotonic time elapsed since the clock started. The runtime reads it
// exactly once per Step and feeds both values to the timer registry and every
// registered ticker.
type TickClock interface {
	Tick() (delta, elapsed time.Duration)
}

// WallClock measures real time between consecutive Step calls. The first tick
// reports a zero delta. This is the default clock.
type WallClock struct {
	start time.Time
	last  time.Time
}

// NewWallClock creates a wall clock that starts counting on its first tick.
func NewWallClock() *WallClock {
	return &WallClock{}
}

// Tick returns the time since the previous tick and since the first one.
func (w *WallClock) Tick() (time.Duration, time.Duration) {
	now := nowFunc()
	if w.last.IsZero() {
		w.start = now
		w.last = now
		return 0, 0
	}
	delta := now.Sub(w.last)
	w.last = now
	return delta, now.Sub(w.start)
}

// ManualClock is a host-driven clock advanced explicitly. Simulation hosts
// and tests use it to decouple tick timing from real time.
type ManualClock struct {
	mu      sync.Mutex
	pending time.Duration
	elapsed time.Duration
}

// NewManualClock creates a manual clock at zero elapsed time.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// Advance accrues d into the next tick's delta.
func (m *ManualClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending += d
}

// Tick consumes the accrued delta and moves elapsed time forward.
func (m *ManualClock) Tick() (time.Duration, time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delta := m.pending
	m.pending = 0
	m.elapsed += delta
	return delta, m.elapsed
}

// Elapsed returns the monotonic time consumed by past ticks.
func (m *ManualClock) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.elapsed
}
