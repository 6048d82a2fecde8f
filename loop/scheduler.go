// Package loop drives the animation: a host-flushed frame queue, the
// visibility-gated Stopped/Running loop and the resize debouncer.
package loop

// Scheduler runs a callback on the host's next frame.
type Scheduler interface {
	Schedule(fn func())
}

// FrameQueue is a Scheduler the host flushes once per frame, like a
// browser's animation-frame callback list.
type FrameQueue struct {
	pending []func()
	running []func()
}

// Schedule queues fn for the next Flush.
func (q *FrameQueue) Schedule(fn func()) {
	q.pending = append(q.pending, fn)
}

// Flush runs every callback queued before the call. Callbacks scheduled
// while flushing wait for the next Flush. Returns how many ran.
func (q *FrameQueue) Flush() int {
	q.running, q.pending = q.pending, q.running[:0]
	for i, fn := range q.running {
		q.running[i] = nil
		fn()
	}
	n := len(q.running)
	q.running = q.running[:0]
	return n
}

// Len returns the number of queued callbacks.
func (q *FrameQueue) Len() int { return len(q.pending) }
