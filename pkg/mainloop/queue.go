// Package mainloop marshals work from background goroutines onto the single
// goroutine that owns the UI tree.
package mainloop

import (
	"sync"

	"go.uber.org/zap"
)

// Task is a unit of work run on the main goroutine.
type Task func()

// Queue is a multi-producer, single-consumer task queue. Producers call Post
// from any goroutine; the owner calls Drain once per cycle.
type Queue struct {
	mu     sync.Mutex
	tasks  []Task
	closed bool
	wake   chan struct{}
	logger *zap.Logger
}

func New(logger *zap.Logger) *Queue {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Queue{
		wake:   make(chan struct{}, 1),
		logger: logger.Named("mainloop"),
	}
}

// Post enqueues t. Safe to call from any goroutine. It reports false and
// drops the task if the queue has been closed.
func (q *Queue) Post(t Task) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		q.logger.Debug("dropping task posted after close")
		return false
	}
	q.tasks = append(q.tasks, t)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return true
}

// Wake delivers a value whenever tasks have been posted since the last
// receive. Frame loops select on it to avoid polling.
func (q *Queue) Wake() <-chan struct{} {
	return q.wake
}

// Drain runs every task posted before the call, in posting order, and returns
// how many ran. Tasks posted while draining wait for the next Drain. A task
// that panics is logged and does not stop the rest.
func (q *Queue) Drain() int {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()

	for _, t := range tasks {
		q.run(t)
	}
	return len(tasks)
}

func (q *Queue) run(t Task) {
	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("task panicked", zap.Any("panic", r))
		}
	}()
	t()
}

// Len returns the number of pending tasks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Close stops accepting tasks and discards pending ones. It returns how many
// were discarded.
func (q *Queue) Close() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return 0
	}
	q.closed = true
	n := len(q.tasks)
	q.tasks = nil
	if n > 0 {
		q.logger.Debug("discarded pending tasks", zap.Int("count", n))
	}
	return n
}

// Closed reports whether Close has been called.
func (q *Queue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}
