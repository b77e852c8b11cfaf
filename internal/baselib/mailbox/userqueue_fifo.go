package mailbox

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
	"time"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// unboundedFIFOQueue is the Unbounded FIFO UserQueue variant. No library in
// the surrounding ecosystem offers a lock-free *unbounded* MPSC queue (the
// lock-free queues available are all capacity-bounded ring buffers), so this
// variant falls back to a mutex-protected container/list, matching the
// "never blocks, never fails" contract of an unbounded queue exactly.
type unboundedFIFOQueue struct {
	mu sync.Mutex
	l  list.List
}

func newUnboundedFIFOQueue() *unboundedFIFOQueue {
	q := &unboundedFIFOQueue{}
	q.l.Init()
	return q
}

func (q *unboundedFIFOQueue) enqueue(_ context.Context, env Envelope) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.l.PushBack(env)
	return nil
}

func (q *unboundedFIFOQueue) dequeue() (Envelope, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	front := q.l.Front()
	if front == nil {
		return Envelope{}, false
	}

	q.l.Remove(front)
	return front.Value.(Envelope), true
}

func (q *unboundedFIFOQueue) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.l.Len()
}

func (q *unboundedFIFOQueue) hasMessages() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.l.Len() > 0
}

// boundedFIFOQueue is the Bounded FIFO UserQueue variant, backed by an
// code.hybscloud.com/lfq multi-producer single-consumer ring buffer. The
// consumer side is single: dequeue is called from within run() and from
// CleanUp, which matches lfq's MPSC single-consumer requirement as long as
// the two do not overlap.
//
// lfq.NewMPSC panics below capacity 2, and silently rounds whatever capacity
// it is given up to the next power of two, so the underlying ring is always
// sized to at least minLFQCapacity and is never trusted directly to decide
// whether there's room: admission is gated on count, a plain atomic counter
// tracking exactly how many envelopes are resident, against capacity, the
// configured bound (lfq deliberately omits a length accessor, since an
// accurate count in a lock-free ring requires cross-core synchronization it
// avoids). This is what makes the configured capacity exact instead of an
// artifact of lfq's internal rounding.
type boundedFIFOQueue struct {
	q           *lfq.MPSC[Envelope]
	capacity    int64
	pushTimeout time.Duration
	count       atomic.Int64
}

// minLFQCapacity is the smallest capacity lfq.NewMPSC accepts without
// panicking. Configured capacities below this still behave exactly as
// configured (including 0, which never admits anything): the underlying
// ring is merely over-provisioned, and the count gate below enforces the
// real bound.
const minLFQCapacity = 2

func newBoundedFIFOQueue(capacity int, pushTimeout time.Duration) *boundedFIFOQueue {
	underlying := capacity
	if underlying < minLFQCapacity {
		underlying = minLFQCapacity
	}

	return &boundedFIFOQueue{
		q:           lfq.NewMPSC[Envelope](underlying),
		capacity:    int64(capacity),
		pushTimeout: pushTimeout,
	}
}

func (q *boundedFIFOQueue) enqueue(ctx context.Context, env Envelope) error {
	var deadline <-chan time.Time
	if q.pushTimeout > 0 {
		timer := time.NewTimer(q.pushTimeout)
		defer timer.Stop()
		deadline = timer.C
	}

	backoff := iox.Backoff{}
	for {
		if q.count.Load() < q.capacity {
			err := q.q.Enqueue(&env)
			if err == nil {
				q.count.Add(1)
				return nil
			}
			if !lfq.IsWouldBlock(err) {
				return err
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			return ErrEnqueueTimeout
		default:
		}

		backoff.Wait()
	}
}

func (q *boundedFIFOQueue) dequeue() (Envelope, bool) {
	env, err := q.q.Dequeue()
	if err != nil {
		return Envelope{}, false
	}

	q.count.Add(-1)
	return env, true
}

func (q *boundedFIFOQueue) size() int {
	return int(q.count.Load())
}

func (q *boundedFIFOQueue) hasMessages() bool {
	return q.count.Load() > 0
}
