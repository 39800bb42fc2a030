package tickq

import "sync"

// job is a single-use unit of exclusive-access work. The closure carries its
// own result delivery; the queue owns the job until the drain step runs it.
type job[S any] func(state S)

// jobQueue is an unbounded multi-producer FIFO consumed only by the drain
// step. Publishing never blocks.
//
// The queue is unbounded to let tasks submit freely between ticks; sustained
// submission without a matching step cadence grows memory without limit.
type jobQueue[S any] struct {
	mu     sync.Mutex
	jobs   []job[S]
	closed bool
}

func newJobQueue[S any](prealloc int) *jobQueue[S] {
	if prealloc <= 0 {
		prealloc = defaultQueuePrealloc
	}
	return &jobQueue[S]{jobs: make([]job[S], 0, prealloc)}
}

// publish appends a job to the queue. It panics when the queue has been shut
// down: submitting work to a torn-down runtime is a host wiring error, not a
// condition tasks can recover from.
func (q *jobQueue[S]) publish(j job[S]) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		panic("tickq: job submitted after runtime shutdown; cancel task contexts before calling Shutdown")
	}
	q.jobs = append(q.jobs, j)
}

// snapshot detaches every currently queued job, preserving acceptance order.
// Jobs published afterwards, including from inside the returned jobs, land in
// the next snapshot.
func (q *jobQueue[S]) snapshot() []job[S] {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.jobs) == 0 {
		return nil
	}
	batch := q.jobs
	q.jobs = make([]job[S], 0, cap(batch))
	return batch
}

func (q *jobQueue[S]) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
}

// size returns the number of jobs awaiting the next drain step.
func (q *jobQueue[S]) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}
