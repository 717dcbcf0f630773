package app

import (
	"slices"
	"sync"
)

// TaskQueue defers work to the goroutine that owns the property graph.
//
// Post may be called from any goroutine; Drain runs the queued tasks on the
// caller's goroutine. Tasks posted under the same key while one is pending
// are coalesced into the pending one.
type TaskQueue struct {
	mu      sync.Mutex
	tasks   []task
	pending map[any]struct{}
	wake    chan struct{}
	closed  bool
}

type task struct {
	key any
	fn  func()
}

// NewTaskQueue creates an empty queue.
func NewTaskQueue() *TaskQueue {
	return &TaskQueue{
		pending: make(map[any]struct{}),
		wake:    make(chan struct{}, 1),
	}
}

// Post queues fn. It reports false if the queue is closed.
func (q *TaskQueue) Post(fn func()) bool {
	return q.post(nil, fn)
}

// PostOnce queues fn unless a task with the same key is still pending.
// It reports whether fn was queued.
// A nil key never coalesces.
func (q *TaskQueue) PostOnce(key any, fn func()) bool {
	return q.post(key, fn)
}

func (q *TaskQueue) post(key any, fn func()) bool {
	if fn == nil {
		return false
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	if key != nil {
		if _, ok := q.pending[key]; ok {
			q.mu.Unlock()
			return false
		}
		q.pending[key] = struct{}{}
	}
	q.tasks = append(q.tasks, task{key: key, fn: fn})
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return true
}

// Wake returns a channel that receives a value after tasks were posted.
// Event loops select on it and call Drain.
func (q *TaskQueue) Wake() <-chan struct{} {
	return q.wake
}

// Len returns the number of queued tasks.
func (q *TaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Drain runs queued tasks in posting order until the queue is empty,
// including tasks posted by the tasks themselves. It returns the number of
// tasks run.
func (q *TaskQueue) Drain() int {
	n := 0
	for {
		q.mu.Lock()
		batch := slices.Clone(q.tasks)
		q.tasks = q.tasks[:0]
		for _, t := range batch {
			if t.key != nil {
				delete(q.pending, t.key)
			}
		}
		q.mu.Unlock()

		if len(batch) == 0 {
			return n
		}
		for _, t := range batch {
			t.fn()
			n++
		}
	}
}

// Close discards queued tasks and rejects new ones.
func (q *TaskQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.tasks = nil
	clear(q.pending)
}
