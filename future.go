package tickq

import "context"

// Future is the pending result of one submitted job. It resolves exactly once,
// after the drain step has executed the job, and must be waited on at most
// once. Dropping a future without waiting is legal: the job still runs, only
// its result is discarded.
type Future[R any] struct {
	result <-chan R
}

// Wait blocks until the job has executed during a drain step and returns its
// result. ctx cancellation stops the wait without cancelling the job.
func (f *Future[R]) Wait(ctx context.Context) (R, error) {
	select {
	case result := <-f.result:
		return result, nil
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// Detach explicitly discards the result, letting the job's effect happen
// without suspending the caller.
func (f *Future[R]) Detach() {}

// NewFuture returns an unresolved future together with its resolve function.
// It is the building block for adapters that complete through submissions of
// their own (timers, resource loads). resolve never blocks and may be called
// after the waiter is gone; resolving more than once is a no-op.
func NewFuture[R any]() (*Future[R], func(R)) {
	result := make(chan R, 1)
	resolve := func(r R) {
		select {
		case result <- r:
		default:
		}
	}
	return &Future[R]{result: result}, resolve
}
