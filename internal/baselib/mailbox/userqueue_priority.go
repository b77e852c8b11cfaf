package mailbox

import (
	"container/heap"
	"context"
	"sync"
	"time"
)

// envelopeHeap is a container/heap.Interface implementation ordering
// envelopes by a caller-supplied Comparator. It is the priority-queue analog
// of the timer min-heap pattern used elsewhere in this ecosystem for
// scheduled work (a slice with Len/Less/Swap/Push/Pop, driven via
// heap.Push/heap.Pop).
type envelopeHeap struct {
	envelopes []Envelope
	less      Comparator
}

func (h envelopeHeap) Len() int { return len(h.envelopes) }

func (h envelopeHeap) Less(i, j int) bool {
	return h.less(h.envelopes[i], h.envelopes[j])
}

func (h envelopeHeap) Swap(i, j int) {
	h.envelopes[i], h.envelopes[j] = h.envelopes[j], h.envelopes[i]
}

func (h *envelopeHeap) Push(x any) {
	h.envelopes = append(h.envelopes, x.(Envelope))
}

func (h *envelopeHeap) Pop() any {
	old := h.envelopes
	n := len(old)
	x := old[n-1]
	h.envelopes = old[:n-1]
	return x
}

// unboundedPriorityQueue is the Unbounded Priority UserQueue variant: a
// mutex-guarded binary heap ordered by a caller-supplied Comparator. Never
// blocks, never fails.
type unboundedPriorityQueue struct {
	mu sync.Mutex
	h  envelopeHeap
}

func newUnboundedPriorityQueue(less Comparator) *unboundedPriorityQueue {
	return &unboundedPriorityQueue{
		h: envelopeHeap{less: less},
	}
}

func (q *unboundedPriorityQueue) enqueue(_ context.Context, env Envelope) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	heap.Push(&q.h, env)
	return nil
}

func (q *unboundedPriorityQueue) dequeue() (Envelope, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.h.Len() == 0 {
		return Envelope{}, false
	}

	return heap.Pop(&q.h).(Envelope), true
}

func (q *unboundedPriorityQueue) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.h.Len()
}

func (q *unboundedPriorityQueue) hasMessages() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.h.Len() > 0
}

// boundedPriorityQueue is the Bounded Priority UserQueue variant: the same
// comparator-ordered heap as unboundedPriorityQueue, gated by a capacity
// semaphore. Admission is acquired via a buffered channel token, mirroring
// the select-on-channel-or-context pattern used for bounded sends elsewhere
// in this codebase's mailbox implementations.
type boundedPriorityQueue struct {
	mu          sync.Mutex
	h           envelopeHeap
	tokens      chan struct{}
	pushTimeout time.Duration
}

func newBoundedPriorityQueue(
	capacity int, pushTimeout time.Duration, less Comparator,
) *boundedPriorityQueue {

	return &boundedPriorityQueue{
		h:           envelopeHeap{less: less},
		tokens:      make(chan struct{}, capacity),
		pushTimeout: pushTimeout,
	}
}

func (q *boundedPriorityQueue) enqueue(ctx context.Context, env Envelope) error {
	var deadline <-chan time.Time
	if q.pushTimeout > 0 {
		timer := time.NewTimer(q.pushTimeout)
		defer timer.Stop()
		deadline = timer.C
	}

	select {
	case q.tokens <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	case <-deadline:
		return ErrEnqueueTimeout
	}

	q.mu.Lock()
	heap.Push(&q.h, env)
	q.mu.Unlock()

	return nil
}

func (q *boundedPriorityQueue) dequeue() (Envelope, bool) {
	q.mu.Lock()
	if q.h.Len() == 0 {
		q.mu.Unlock()
		return Envelope{}, false
	}
	env := heap.Pop(&q.h).(Envelope)
	q.mu.Unlock()

	// Release the admission token taken by the corresponding enqueue.
	<-q.tokens

	return env, true
}

func (q *boundedPriorityQueue) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.h.Len()
}

func (q *boundedPriorityQueue) hasMessages() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.h.Len() > 0
}
