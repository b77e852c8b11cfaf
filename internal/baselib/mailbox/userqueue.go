package mailbox

import "context"

// UserQueue is the variant interface backing a Mailbox's user-message side.
// Four concrete implementations exist (see userqueue_fifo.go and
// userqueue_priority.go), selected at construction time by MailboxFactory.
type UserQueue interface {
	// enqueue adds env to the queue. Unbounded variants never block and
	// never fail. Bounded variants may block up to a configured push
	// timeout and return ErrEnqueueTimeout on expiry, or the context's
	// error if ctx is cancelled first.
	enqueue(ctx context.Context, env Envelope) error

	// dequeue removes and returns the next envelope in the variant's
	// order. The second return value is false if the queue was empty.
	dequeue() (Envelope, bool)

	// size reports the approximate number of envelopes currently queued.
	// For the lock-free bounded FIFO variant this is a best-effort count
	// maintained alongside the queue, not a synchronized read of the
	// underlying ring buffer (accurate counts there require cross-core
	// synchronization the backing queue deliberately avoids).
	size() int

	// hasMessages reports whether the queue is currently non-empty.
	hasMessages() bool
}

// Comparator orders two envelopes for a priority UserQueue. It returns true
// if a should be dequeued before b. Equal-ranked envelopes have no
// guaranteed relative order.
type Comparator func(a, b Envelope) bool
