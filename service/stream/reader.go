// Package stream provides cursor-based incremental readers over append-only
// per-tick logs, built purely on exclusive-access job submissions.
package stream

import (
	"context"

	"github.com/viant/tickq"
)

// ReadFunc reads all log entries after cursor within state, returning the
// cloned items, the advanced cursor and an error. The host supplies it; for
// eventlog-backed state it is typically a one-line adapter over ReadSince.
type ReadFunc[S, E, C any] func(state S, cursor C) ([]E, C, error)

// Reader yields entries of an append-only host log in exact append order,
// with no loss or duplication, across arbitrarily many drain cycles. It never
// terminates on its own: an exhausted log simply makes Next wait for future
// ticks. The one documented exception is the host discarding history faster
// than it is read, which surfaces as the read function's error.
//
// A Reader is owned by a single task; it is not safe for concurrent use.
type Reader[S, E, C any] struct {
	handle *tickq.Handle[S]
	read   ReadFunc[S, E, C]
	buffer []E
	cursor C
}

// New creates a reader positioned at the zero cursor.
func New[S, E, C any](h *tickq.Handle[S], read ReadFunc[S, E, C]) *Reader[S, E, C] {
	var start C
	return NewAt(h, read, start)
}

// NewAt creates a reader positioned at cursor.
func NewAt[S, E, C any](h *tickq.Handle[S], read ReadFunc[S, E, C], cursor C) *Reader[S, E, C] {
	return &Reader[S, E, C]{handle: h, read: read, cursor: cursor}
}

type refill[E, C any] struct {
	items  []E
	cursor C
	err    error
}

// Next returns the next unread entry. With a non-empty local buffer it
// returns immediately; otherwise it submits one refill job per tick and
// suspends until the drain step executes it, so an idle log costs exactly one
// queue submission per tick.
func (r *Reader[S, E, C]) Next(ctx context.Context) (E, error) {
	for {
		if len(r.buffer) > 0 {
			var zero E
			item := r.buffer[0]
			r.buffer[0] = zero
			r.buffer = r.buffer[1:]
			return item, nil
		}
		cursor := r.cursor
		future := tickq.Submit(r.handle, func(state S) refill[E, C] {
			items, next, err := r.read(state, cursor)
			return refill[E, C]{items: items, cursor: next, err: err}
		})
		result, err := future.Wait(ctx)
		if err != nil {
			var zero E
			return zero, err
		}
		if result.err != nil {
			// Advance past the failure point so callers that choose to
			// continue resume at the host's reported position.
			r.cursor = result.cursor
			var zero E
			return zero, result.err
		}
		r.buffer = result.items
		r.cursor = result.cursor
	}
}

// Cursor returns the position of the last consumed refill.
func (r *Reader[S, E, C]) Cursor() C {
	return r.cursor
}

// Seek repositions the reader and discards its local buffer.
func (r *Reader[S, E, C]) Seek(cursor C) {
	r.cursor = cursor
	r.buffer = nil
}
