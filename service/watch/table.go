// Package watch implements per-tick diff-and-notify subscriptions over
// values derived from the shared state.
package watch

import (
	"fmt"
	"sync"
	"time"

	"github.com/viant/tickq"
	"github.com/viant/tickq/internal/idgen"
)

// Lookup computes the current authoritative value of key within state. It is
// supplied by the host and only ever invoked with exclusive state access.
type Lookup[S any, K comparable, V any] func(state S, key K) V

// Table diffs watched keys once per tick and fans genuine changes out to
// subscribers. A key's entry is created by its first subscriber and removed
// once the last subscriber is gone. Register the table as a runtime Ticker.
type Table[S any, K comparable, V any] struct {
	lookup   Lookup[S, K, V]
	equality Equality[V]
	buffer   int

	mu      sync.Mutex
	entries map[K]*entry[V]
}

type entry[V any] struct {
	subs map[string]*Subscription[V]
}

// Option customises a Table.
type Option func(o *options)

type options struct {
	buffer int
}

// WithBuffer sets the per-subscription channel capacity. A subscriber that
// falls more than buffer notifications behind is treated as gone and removed.
func WithBuffer(buffer int) Option {
	return func(o *options) {
		o.buffer = buffer
	}
}

// NewTable creates a table over the supplied lookup. The equality strategy is
// mandatory: passing nil is an error rather than a silent fallback to
// structural comparison, which is wrong for some foreign value types.
func NewTable[S any, K comparable, V any](lookup Lookup[S, K, V], equality Equality[V], opts ...Option) (*Table[S, K, V], error) {
	if lookup == nil {
		return nil, fmt.Errorf("watch: lookup was nil")
	}
	if equality == nil {
		return nil, fmt.Errorf("watch: equality strategy was nil - use Comparable or supply one")
	}
	o := &options{buffer: 16}
	for _, opt := range opts {
		opt(o)
	}
	if o.buffer <= 0 {
		return nil, fmt.Errorf("watch: buffer must be > 0")
	}
	return &Table[S, K, V]{
		lookup:   lookup,
		equality: equality,
		buffer:   o.buffer,
		entries:  make(map[K]*entry[V]),
	}, nil
}

// Tick scans all watched keys, recomputes their authoritative value and
// notifies every subscriber whose last observed value differs. Subscribers
// that are closed or fell behind are collected during the scan and removed
// after it completes.
func (t *Table[S, K, V]) Tick(state S, _, _ time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	type removal struct {
		key K
		id  string
	}
	var stale []removal

	for key, e := range t.entries {
		current := t.lookup(state, key)
		for id, sub := range e.subs {
			if sub.isClosed() {
				stale = append(stale, removal{key: key, id: id})
				continue
			}
			if t.equality.Equal(sub.last, current) {
				continue
			}
			select {
			case sub.ch <- current:
				sub.last = current
			default:
				// Receiver gone or hopelessly behind.
				stale = append(stale, removal{key: key, id: id})
			}
		}
	}

	for _, r := range stale {
		e, ok := t.entries[r.key]
		if !ok {
			continue
		}
		if sub, ok := e.subs[r.id]; ok {
			delete(e.subs, r.id)
			sub.drop()
		}
		if len(e.subs) == 0 {
			delete(t.entries, r.key)
		}
	}
}

// subscribe registers a new subscription for key, seeded with the snapshot
// value computed from state. Callers hold exclusive state access.
func (t *Table[S, K, V]) subscribe(state S, key K) *Subscription[V] {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[key]
	if !ok {
		e = &entry[V]{subs: make(map[string]*Subscription[V])}
		t.entries[key] = e
	}
	snapshot := t.lookup(state, key)
	sub := &Subscription[V]{
		id:   idgen.New(),
		ch:   make(chan V, t.buffer),
		last: snapshot,
	}
	// Guaranteed first observation, even if the value never changes again.
	sub.ch <- snapshot
	e.subs[sub.id] = sub
	return sub
}

// Len returns the number of watched keys.
func (t *Table[S, K, V]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Subscribe submits an exclusive-access job that registers a subscription for
// key and returns a stream yielding the snapshot value followed by one value
// per genuine change.
func Subscribe[S any, K comparable, V any](h *tickq.Handle[S], t *Table[S, K, V], key K) *Stream[V] {
	future := tickq.Submit(h, func(state S) *Subscription[V] {
		return t.subscribe(state, key)
	})
	return &Stream[V]{pending: future}
}
