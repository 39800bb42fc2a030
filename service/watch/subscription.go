package watch

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/viant/tickq"
)

// ErrClosed reports a receive from a subscription the table already removed.
var ErrClosed = fmt.Errorf("watch: subscription closed")

// Subscription receives the snapshot value present at subscribe time followed
// by one notification per genuine change. Values arrive in change order with
// nothing skipped or collapsed, as long as the receiver keeps up.
type Subscription[V any] struct {
	id     string
	ch     chan V
	last   V
	closed atomic.Bool
}

// Recv blocks until the next value, ctx cancellation or removal.
func (s *Subscription[V]) Recv(ctx context.Context) (V, error) {
	select {
	case value, ok := <-s.ch:
		if !ok {
			var zero V
			return zero, ErrClosed
		}
		return value, nil
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}

// C exposes the notification channel for use in select statements. The
// channel closes once the table removes the subscription.
func (s *Subscription[V]) C() <-chan V {
	return s.ch
}

// Close marks the subscription for removal; the table reaps it on its next
// scan. Buffered notifications remain readable until then.
func (s *Subscription[V]) Close() {
	s.closed.Store(true)
}

func (s *Subscription[V]) isClosed() bool {
	return s.closed.Load()
}

// drop is called by the table once the subscription is removed from an entry.
func (s *Subscription[V]) drop() {
	s.closed.Store(true)
	close(s.ch)
}

// Stream adapts a pending subscription for task-side consumption: the first
// Next suspends until the registering job has run during a drain step.
type Stream[V any] struct {
	pending *tickq.Future[*Subscription[V]]
	sub     *Subscription[V]
	closed  bool
}

// Next returns the next observed value: the snapshot first, then one value
// per change.
func (s *Stream[V]) Next(ctx context.Context) (V, error) {
	if s.closed {
		var zero V
		return zero, ErrClosed
	}
	if s.sub == nil {
		sub, err := s.pending.Wait(ctx)
		if err != nil {
			var zero V
			return zero, err
		}
		s.sub = sub
	}
	return s.sub.Recv(ctx)
}

// Close stops the stream. When the subscription has not resolved yet the
// table reaps it once its buffer fills; otherwise it is removed on the next
// scan.
func (s *Stream[V]) Close() {
	s.closed = true
	if s.sub != nil {
		s.sub.Close()
	}
}
