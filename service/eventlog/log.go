// Package eventlog provides an in-memory append-only log with stable cursors
// and bounded retention, for host state that wants a per-tick event or
// message feed readable through service/stream.
package eventlog

import (
	"fmt"
	"sync"
)

// Cursor identifies an absolute position in a log. The zero cursor reads from
// the beginning; cursors stay valid across appends and, unless retention
// discards unread history, across reads.
type Cursor int64

// TruncatedError reports entries discarded by retention before they were
// read. Readers decide whether to fail or to resynchronise at Log.End.
type TruncatedError struct {
	// Missed is the number of discarded entries between the reader's cursor
	// and the oldest retained entry.
	Missed int64
}

// Error implements error.
func (e *TruncatedError) Error() string {
	return fmt.Sprintf("eventlog: cursor truncated, missed %d entries", e.Missed)
}

// Log is an append-only event log. Appends happen during drain jobs or host
// systems; reads clone entries so callers never alias log memory.
type Log[E any] struct {
	mu        sync.RWMutex
	entries   []E
	first     Cursor
	retention int
}

// Option customises a Log.
type Option func(o *options)

type options struct {
	retention int
}

// WithRetention caps the number of retained entries; older entries are
// discarded on append. Zero keeps everything.
func WithRetention(entries int) Option {
	return func(o *options) {
		o.retention = entries
	}
}

// New creates an empty log.
func New[E any](opts ...Option) *Log[E] {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return &Log[E]{retention: o.retention}
}

// Append adds items to the end of the log, discarding the oldest entries
// when retention is exceeded.
func (l *Log[E]) Append(items ...E) {
	if len(items) == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, items...)
	if l.retention > 0 && len(l.entries) > l.retention {
		drop := len(l.entries) - l.retention
		l.entries = append(l.entries[:0:0], l.entries[drop:]...)
		l.first += Cursor(drop)
	}
}

// ReadSince returns a copy of every entry after cursor together with the
// advanced cursor. When retention already discarded entries the reader has
// not seen, it returns a *TruncatedError carrying the missed count and a
// cursor positioned at the oldest retained entry.
func (l *Log[E]) ReadSince(cursor Cursor) ([]E, Cursor, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if cursor < l.first {
		return nil, l.first, &TruncatedError{Missed: int64(l.first - cursor)}
	}
	offset := int(cursor - l.first)
	if offset >= len(l.entries) {
		return nil, cursor, nil
	}
	items := append([]E(nil), l.entries[offset:]...)
	return items, l.first + Cursor(len(l.entries)), nil
}

// End returns the cursor one past the newest entry.
func (l *Log[E]) End() Cursor {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.first + Cursor(len(l.entries))
}

// Len returns the number of retained entries.
func (l *Log[E]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
