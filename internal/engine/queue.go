package engine

import "sync"

// queue serialises engine messages. Whoever posts while nobody is draining
// becomes the drainer and runs messages until the queue is empty, so every
// message runs on exactly one goroutine at a time and in FIFO order.
type queue struct {
	mu       sync.Mutex
	pending  []func()
	draining bool
}

// post appends msg and drains the queue unless another goroutine already is.
func (q *queue) post(msg func()) {
	q.mu.Lock()
	q.pending = append(q.pending, msg)
	if q.draining {
		q.mu.Unlock()
		return
	}
	q.draining = true
	q.mu.Unlock()

	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.draining = false
			q.mu.Unlock()
			return
		}
		next := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]
		q.mu.Unlock()

		next()
	}
}
