package mailbox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestStatusWordDefaultIsOpen verifies the zero value of StatusWord is Open,
// unscheduled.
func TestStatusWordDefaultIsOpen(t *testing.T) {
	t.Parallel()

	var s StatusWord
	require.True(t, s.shouldProcessMessage())
	require.False(t, s.isSuspended())
	require.False(t, s.isClosed())
	require.False(t, s.isScheduled())
}

// TestStatusWordBecomeTransitions exercises the three primary-state
// transitions and their idempotence once Closed.
func TestStatusWordBecomeTransitions(t *testing.T) {
	t.Parallel()

	var s StatusWord

	require.True(t, s.becomeSuspended())
	require.True(t, s.isSuspended())

	require.True(t, s.becomeOpen())
	require.True(t, s.shouldProcessMessage())

	require.True(t, s.becomeClosed())
	require.True(t, s.isClosed())

	// Closed is terminal: every further transition is a no-op.
	require.False(t, s.becomeOpen())
	require.False(t, s.becomeSuspended())
	require.False(t, s.becomeClosed())
	require.True(t, s.isClosed())
}

// TestStatusWordScheduledBitPreservedAcrossPrimaryTransitions verifies that
// becomeOpen/becomeSuspended never disturb an already-set Scheduled bit.
func TestStatusWordScheduledBitPreservedAcrossPrimaryTransitions(t *testing.T) {
	t.Parallel()

	var s StatusWord

	require.True(t, s.setAsScheduled())
	require.True(t, s.isScheduled())

	require.True(t, s.becomeSuspended())
	require.True(t, s.isScheduled())
	require.True(t, s.isSuspended())

	require.True(t, s.becomeOpen())
	require.True(t, s.isScheduled())
	require.True(t, s.shouldProcessMessage())
}

// TestStatusWordSetAsScheduledRejectsClosed verifies setAsScheduled never
// succeeds once the primary state is Closed.
func TestStatusWordSetAsScheduledRejectsClosed(t *testing.T) {
	t.Parallel()

	var s StatusWord
	require.True(t, s.becomeClosed())
	require.False(t, s.setAsScheduled())
	require.False(t, s.isScheduled())
}

// TestStatusWordSetAsScheduledRejectsDoubleSchedule verifies setAsScheduled
// returns false if the Scheduled bit is already set.
func TestStatusWordSetAsScheduledRejectsDoubleSchedule(t *testing.T) {
	t.Parallel()

	var s StatusWord
	require.True(t, s.setAsScheduled())
	require.False(t, s.setAsScheduled())
}

// TestStatusWordSetAsIdleClearsOnClosed verifies clearing Scheduled is
// harmless even once the mailbox has closed.
func TestStatusWordSetAsIdleClearsOnClosed(t *testing.T) {
	t.Parallel()

	var s StatusWord
	require.True(t, s.setAsScheduled())
	require.True(t, s.becomeClosed())
	require.True(t, s.isScheduled())

	s.setAsIdle()
	require.False(t, s.isScheduled())
	require.True(t, s.isClosed())
}

// TestStatusWordRoundTrip verifies setAsScheduled followed by setAsIdle
// returns the word to its pre-call value.
func TestStatusWordRoundTrip(t *testing.T) {
	t.Parallel()

	var s StatusWord
	require.True(t, s.becomeSuspended())

	before := s.status()
	require.True(t, s.setAsScheduled())
	s.setAsIdle()
	require.Equal(t, before, s.status())
}
