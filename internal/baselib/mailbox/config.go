package mailbox

import (
	"time"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// Variant selects one of the four UserQueue flavors at mailbox construction
// time.
type Variant int

const (
	// VariantUnboundedFIFO never blocks and never fails on enqueue;
	// dequeue order matches arrival order.
	VariantUnboundedFIFO Variant = iota

	// VariantBoundedFIFO enqueues into a fixed-capacity ring buffer,
	// applying the configured push timeout once full.
	VariantBoundedFIFO

	// VariantUnboundedPriority never blocks and never fails on enqueue;
	// dequeue order follows the configured Comparator.
	VariantUnboundedPriority

	// VariantBoundedPriority combines VariantUnboundedPriority's
	// ordering with VariantBoundedFIFO's capacity and timeout semantics.
	VariantBoundedPriority
)

// MailboxConfig selects a UserQueue variant and its parameters. Capacity and
// PushTimeout are only consulted for the two bounded variants; Less is only
// consulted for the two priority variants.
type MailboxConfig struct {
	// Variant selects the UserQueue implementation.
	Variant Variant

	// Capacity is the maximum number of queued user envelopes for a
	// bounded variant. Must be >= 0.
	Capacity int

	// PushTimeout bounds how long a bounded enqueue will wait for
	// capacity before failing with ErrEnqueueTimeout. Required (fn.Some)
	// for the two bounded variants; a zero duration requests block-forever
	// semantics.
	PushTimeout fn.Option[time.Duration]

	// Less orders envelopes for a priority variant. Required (non-nil)
	// for VariantUnboundedPriority and VariantBoundedPriority.
	Less Comparator
}

// DefaultMailboxConfig returns the Unbounded FIFO variant, the simplest and
// most permissive configuration, requiring no further parameters.
func DefaultMailboxConfig() MailboxConfig {
	return MailboxConfig{Variant: VariantUnboundedFIFO}
}

// DispatcherConfig controls how a Dispatcher bounds a single run() batch.
type DispatcherConfig struct {
	// Throughput is the maximum number of user-message invocations
	// performed within a single run(). Must be >= 1.
	Throughput int

	// Deadline, when fn.Some, bounds the wall-clock duration a single
	// run() may spend invoking user messages, in addition to the
	// Throughput bound. fn.None means no wall-clock deadline.
	Deadline fn.Option[time.Duration]

	// WorkerCount is the number of goroutines the reference
	// WorkerPoolDispatcher uses to drain scheduled mailboxes.
	WorkerCount int
}

// DefaultDispatcherConfig returns a dispatcher configuration with a
// throughput of 100 messages per run, no wall-clock deadline, and a single
// worker.
func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		Throughput:  100,
		WorkerCount: 1,
	}
}
