package tickq

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/viant/tickq/service/timer"
	"github.com/viant/tickq/tracing"
)

// Ticker receives one callback per tick with exclusive state access, after
// timers advance and before queued jobs drain. Watch tables implement it.
type Ticker[S any] interface {
	Tick(state S, delta, elapsed time.Duration)
}

// Runtime is the host-facing side of the engine. The host calls Step exactly
// once per tick with exclusive access to the shared state; everything else
// reaches that state only through jobs submitted via handles.
type Runtime[S any] struct {
	queue  *jobQueue[S]
	timers *timer.Registry
	clock  TickClock

	mu      sync.Mutex
	tickers []Ticker[S]

	tasks sync.WaitGroup
}

// NewHandle produces the capability object a task uses to submit jobs. The
// handle is valid until the runtime shuts down.
func (r *Runtime[S]) NewHandle() *Handle[S] {
	return &Handle[S]{queue: r.queue, timers: r.timers}
}

// Timers exposes the registry advanced by Step. Registrations belong inside
// submitted jobs so all timer mutation stays within the drain.
func (r *Runtime[S]) Timers() *timer.Registry {
	return r.timers
}

// RegisterTicker adds a per-tick callback. Tickers run in registration order,
// before each drain pass.
func (r *Runtime[S]) RegisterTicker(t Ticker[S]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickers = append(r.tickers, t)
}

// Spawn pairs a freshly created handle with an async computation and runs it
// on its own goroutine. Cancelling ctx is the only way to cancel the task:
// the task stops resuming at its next suspension point, while any job it
// already submitted still executes.
func (r *Runtime[S]) Spawn(ctx context.Context, task func(ctx context.Context, h *Handle[S])) {
	handle := r.NewHandle()
	r.tasks.Add(1)
	go func() {
		defer r.tasks.Done()
		task(ctx, handle)
	}()
}

// Step runs one tick with exclusive access to state: it reads the tick clock,
// advances timers, runs registered tickers and finally drains the job queue.
// The drain executes every job queued before the pass began, serially and in
// acceptance order; jobs submitted during the pass run on the next Step. It
// returns the number of executed jobs.
func (r *Runtime[S]) Step(ctx context.Context, state S) int {
	delta, elapsed := r.clock.Tick()

	_, span := tracing.StartSpan(ctx, "tickq.step", "INTERNAL")
	fired := r.timers.Advance(delta, elapsed)
	for _, ticker := range r.snapshotTickers() {
		ticker.Tick(state, delta, elapsed)
	}
	jobs := r.queue.snapshot()
	for _, job := range jobs {
		job(state)
	}
	span.WithAttributes(map[string]string{
		"tickq.jobs":         strconv.Itoa(len(jobs)),
		"tickq.timers.fired": strconv.Itoa(fired),
		"tickq.delta":        delta.String(),
	})
	tracing.EndSpan(span, nil)
	return len(jobs)
}

func (r *Runtime[S]) snapshotTickers() []Ticker[S] {
	r.mu.Lock()
	defer r.mu.Unlock()
	tickers := make([]Ticker[S], len(r.tickers))
	copy(tickers, r.tickers)
	return tickers
}

// Shutdown closes the job queue and waits for spawned tasks to return. The
// host must cancel task contexts first: any task still submitting after
// shutdown panics, as the queue has no consumer left.
func (r *Runtime[S]) Shutdown(ctx context.Context) error {
	r.queue.close()
	done := make(chan struct{})
	go func() {
		r.tasks.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
