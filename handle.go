package tickq

import (
	"time"

	"github.com/viant/tickq/service/timer"
)

// Handle is the capability a task uses to request exclusive state access. It
// is cheap to copy and safe to share between goroutines; every higher-level
// operation is expressed as one or more job submissions through it.
type Handle[S any] struct {
	queue  *jobQueue[S]
	timers *timer.Registry
}

// Submit schedules fn to run with exclusive state access during the next
// drain step and returns a future over its result. Sequentially awaited
// submissions from the same handle execute in submission order.
func Submit[S, R any](h *Handle[S], fn func(state S) R) *Future[R] {
	result := make(chan R, 1)
	h.queue.publish(func(state S) {
		// Buffered send: delivery to an abandoned future is absorbed, never
		// an error.
		result <- fn(state)
	})
	return &Future[R]{result: result}
}

// Post schedules fn without retaining its result. Posting many small
// mutations lets them all run within the same drain step instead of paying a
// tick of latency each.
func (h *Handle[S]) Post(fn func(state S)) {
	h.queue.publish(fn)
}

// Sleep returns a signal that fires once the per-tick deltas accumulated
// after registration reach d. Resolution is bounded by tick granularity.
func (h *Handle[S]) Sleep(d time.Duration) *timer.Signal {
	signal := timer.NewSignal()
	h.Post(func(S) {
		h.timers.After(d, signal)
	})
	return signal
}

// SleepUntil returns a signal that fires once the tick clock's monotonic
// elapsed-since-start reaches the supplied deadline.
func (h *Handle[S]) SleepUntil(elapsed time.Duration) *timer.Signal {
	signal := timer.NewSignal()
	h.Post(func(S) {
		h.timers.At(elapsed, signal)
	})
	return signal
}

// Pending returns the number of jobs queued and not yet drained.
func (h *Handle[S]) Pending() int {
	return h.queue.size()
}
