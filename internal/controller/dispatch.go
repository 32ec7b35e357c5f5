package controller

import "sync"

// Dispatcher marshals work onto the controller's owning context. Post
// may be called from any goroutine; the posted functions must run one
// at a time, in order, on the goroutine that owns the controller.
type Dispatcher interface {
	Post(fn func())
}

// DispatcherFunc adapts a function to Dispatcher
type DispatcherFunc func(fn func())

func (f DispatcherFunc) Post(fn func()) { f(fn) }

// Queue is a Dispatcher for owners that pump work explicitly, such as
// tests and the non-interactive CLI.
type Queue struct {
	mu      sync.Mutex
	pending []func()
	ready   chan struct{}
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{ready: make(chan struct{}, 1)}
}

// Post enqueues fn
func (q *Queue) Post(fn func()) {
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Drain runs everything queued so far, including work posted by the
// functions it runs, and returns how many functions ran.
func (q *Queue) Drain() int {
	n := 0
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.mu.Unlock()
			return n
		}
		fn := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		fn()
		n++
	}
}

// Len returns the number of queued functions
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Ready is signalled after Post. Owners select on it and then Drain.
func (q *Queue) Ready() <-chan struct{} {
	return q.ready
}
