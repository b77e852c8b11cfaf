package mailbox

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testUserMsg struct {
	BaseMessage
	n int
}

func (m testUserMsg) MessageType() string { return "testUserMsg" }

func envOf(n int) Envelope {
	return Envelope{Message: testUserMsg{n: n}}
}

// TestUnboundedFIFOQueueRoundTrip verifies arrival order is preserved.
func TestUnboundedFIFOQueueRoundTrip(t *testing.T) {
	t.Parallel()

	q := newUnboundedFIFOQueue()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, q.enqueue(ctx, envOf(i)))
	}
	require.Equal(t, 5, q.size())

	for i := 0; i < 5; i++ {
		env, ok := q.dequeue()
		require.True(t, ok)
		require.Equal(t, i, env.Message.(testUserMsg).n)
	}

	_, ok := q.dequeue()
	require.False(t, ok)
}

// TestBoundedFIFOQueueRoundTrip verifies arrival order for the bounded
// variant under capacity.
func TestBoundedFIFOQueueRoundTrip(t *testing.T) {
	t.Parallel()

	q := newBoundedFIFOQueue(8, 0)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, q.enqueue(ctx, envOf(i)))
	}
	require.True(t, q.hasMessages())

	for i := 0; i < 5; i++ {
		env, ok := q.dequeue()
		require.True(t, ok)
		require.Equal(t, i, env.Message.(testUserMsg).n)
	}

	require.False(t, q.hasMessages())
}

// TestBoundedFIFOQueueTimeout verifies that enqueue fails with
// ErrEnqueueTimeout once capacity is exhausted and push-timeout elapses.
func TestBoundedFIFOQueueTimeout(t *testing.T) {
	t.Parallel()

	q := newBoundedFIFOQueue(2, 50*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, q.enqueue(ctx, envOf(1)))
	require.NoError(t, q.enqueue(ctx, envOf(2)))

	start := time.Now()
	err := q.enqueue(ctx, envOf(3))
	elapsed := time.Since(start)

	require.ErrorIs(t, err, ErrEnqueueTimeout)
	require.GreaterOrEqual(t, elapsed, 40*time.Millisecond)

	// The first two messages are still queued.
	env, ok := q.dequeue()
	require.True(t, ok)
	require.Equal(t, 1, env.Message.(testUserMsg).n)
}

// TestBoundedFIFOQueueContextCancellation verifies enqueue returns the
// context's error if it is cancelled before a timeout or free slot.
func TestBoundedFIFOQueueContextCancellation(t *testing.T) {
	t.Parallel()

	q := newBoundedFIFOQueue(2, 0)
	ctx := context.Background()

	require.NoError(t, q.enqueue(ctx, envOf(1)))
	require.NoError(t, q.enqueue(ctx, envOf(2)))

	cancelCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()

	err := q.enqueue(cancelCtx, envOf(3))
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

// TestBoundedFIFOQueueCapacityNotRoundedToPow2 verifies that a non-power-
// of-2 capacity is honored exactly, rather than lfq's internal rounding
// silently admitting more envelopes than configured.
func TestBoundedFIFOQueueCapacityNotRoundedToPow2(t *testing.T) {
	t.Parallel()

	q := newBoundedFIFOQueue(3, 20*time.Millisecond)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, q.enqueue(ctx, envOf(i)))
	}

	err := q.enqueue(ctx, envOf(99))
	require.ErrorIs(t, err, ErrEnqueueTimeout)
	require.Equal(t, 3, q.size())
}

// TestBoundedFIFOQueueSmallCapacityDoesNotPanic verifies that capacities
// below lfq's own minimum of 2 construct and enforce the configured bound
// without panicking.
func TestBoundedFIFOQueueSmallCapacityDoesNotPanic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	zero := newBoundedFIFOQueue(0, 10*time.Millisecond)
	err := zero.enqueue(ctx, envOf(1))
	require.ErrorIs(t, err, ErrEnqueueTimeout)
	require.False(t, zero.hasMessages())

	one := newBoundedFIFOQueue(1, 10*time.Millisecond)
	require.NoError(t, one.enqueue(ctx, envOf(1)))
	err = one.enqueue(ctx, envOf(2))
	require.ErrorIs(t, err, ErrEnqueueTimeout)
	require.Equal(t, 1, one.size())
}

func intLess(a, b Envelope) bool {
	return a.Message.(testUserMsg).n < b.Message.(testUserMsg).n
}

// TestUnboundedPriorityQueueOrder verifies comparator-ordered dequeue.
func TestUnboundedPriorityQueueOrder(t *testing.T) {
	t.Parallel()

	q := newUnboundedPriorityQueue(intLess)
	ctx := context.Background()

	for _, n := range []int{5, 1, 3, 1} {
		require.NoError(t, q.enqueue(ctx, envOf(n)))
	}

	var got []int
	for {
		env, ok := q.dequeue()
		if !ok {
			break
		}
		got = append(got, env.Message.(testUserMsg).n)
	}

	require.Equal(t, []int{1, 1, 3, 5}, got)
}

// TestBoundedPriorityQueueOrderAndCapacity verifies comparator ordering
// alongside capacity-timeout semantics.
func TestBoundedPriorityQueueOrderAndCapacity(t *testing.T) {
	t.Parallel()

	q := newBoundedPriorityQueue(2, 30*time.Millisecond, intLess)
	ctx := context.Background()

	require.NoError(t, q.enqueue(ctx, envOf(9)))
	require.NoError(t, q.enqueue(ctx, envOf(4)))

	err := q.enqueue(ctx, envOf(7))
	require.ErrorIs(t, err, ErrEnqueueTimeout)

	env, ok := q.dequeue()
	require.True(t, ok)
	require.Equal(t, 4, env.Message.(testUserMsg).n)

	// Freed a slot; a new enqueue now succeeds immediately.
	require.NoError(t, q.enqueue(ctx, envOf(1)))

	env, ok = q.dequeue()
	require.True(t, ok)
	require.Equal(t, 1, env.Message.(testUserMsg).n)
}
