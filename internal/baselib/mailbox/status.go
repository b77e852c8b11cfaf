package mailbox

import "sync/atomic"

// PrimaryState is the low-order portion of a StatusWord, describing the
// mailbox's lifecycle stage independent of scheduling.
type PrimaryState uint32

const (
	// Open is the default state: user and system messages are both
	// processed.
	Open PrimaryState = 0

	// Suspended means system messages are still processed, but user
	// messages are held in the queue until the mailbox returns to Open.
	Suspended PrimaryState = 1

	// Closed is terminal. No further processing of any kind occurs; only
	// cleanUp may still drain the queues.
	Closed PrimaryState = 2
)

// scheduledBit marks that the mailbox is currently registered with a
// dispatcher's run queue. It occupies bit 2, leaving the low two bits free
// for PrimaryState.
const scheduledBit uint32 = 1 << 2

// primaryMask isolates the low two bits carrying PrimaryState.
const primaryMask uint32 = 0x3

// StatusWord is a single packed atomic integer combining PrimaryState (low
// two bits) and a Scheduled flag (bit 2). The packing is load-bearing: a raw
// value <= uint32(Suspended) identifies "primary state is Open or Suspended
// and Scheduled is clear" in one comparison, which setAsScheduled relies on
// to collapse three separate checks into a single CAS guard.
type StatusWord struct {
	word atomic.Uint32
}

// status returns the raw packed word with acquire semantics.
func (s *StatusWord) status() uint32 {
	return s.word.Load()
}

// primary extracts the PrimaryState from a raw packed word.
func primary(word uint32) PrimaryState {
	return PrimaryState(word & primaryMask)
}

// scheduled reports whether the Scheduled bit is set in a raw packed word.
func scheduled(word uint32) bool {
	return word&scheduledBit != 0
}

// shouldProcessMessage reports whether the primary state permits user
// message processing right now, i.e. primary state is exactly Open.
func (s *StatusWord) shouldProcessMessage() bool {
	return primary(s.status()) == Open
}

// isSuspended reports whether the primary state is Suspended.
func (s *StatusWord) isSuspended() bool {
	return primary(s.status()) == Suspended
}

// isClosed reports whether the primary state is Closed.
func (s *StatusWord) isClosed() bool {
	return primary(s.status()) == Closed
}

// isScheduled reports whether the Scheduled bit is currently set.
func (s *StatusWord) isScheduled() bool {
	return scheduled(s.status())
}

// becomePrimary CAS-loops the primary state to target, preserving whatever
// Scheduled bit is currently set. It is a no-op (returns false) once the
// current primary state is Closed, since Closed is terminal.
func (s *StatusWord) becomePrimary(target PrimaryState) bool {
	for {
		old := s.word.Load()
		if primary(old) == Closed {
			return false
		}

		newWord := uint32(target) | (old & scheduledBit)
		if s.word.CompareAndSwap(old, newWord) {
			return true
		}
	}
}

// becomeOpen transitions the primary state to Open, preserving the
// Scheduled bit. Idempotent no-op once Closed.
func (s *StatusWord) becomeOpen() bool {
	return s.becomePrimary(Open)
}

// becomeSuspended transitions the primary state to Suspended, preserving
// the Scheduled bit. Idempotent no-op once Closed.
func (s *StatusWord) becomeSuspended() bool {
	return s.becomePrimary(Suspended)
}

// becomeClosed transitions the primary state to Closed, preserving the
// Scheduled bit. Idempotent no-op: calling it again once already Closed
// returns false, since the transition has already happened.
func (s *StatusWord) becomeClosed() bool {
	for {
		old := s.word.Load()
		if primary(old) == Closed {
			return false
		}

		newWord := uint32(Closed) | (old & scheduledBit)
		if s.word.CompareAndSwap(old, newWord) {
			return true
		}
	}
}

// setAsScheduled sets the Scheduled bit, but only if the primary state is
// Open or Suspended and Scheduled is currently clear — equivalently, only if
// the raw word is <= uint32(Suspended). This single comparison is the
// reason the PrimaryState/scheduledBit values are fixed as they are: it
// folds "not Closed", "not already Scheduled" into one check. Returns false
// without retrying if the mailbox is ineligible; retries only on transient
// CAS contention along the eligible branch.
func (s *StatusWord) setAsScheduled() bool {
	for {
		old := s.word.Load()
		if old > uint32(Suspended) {
			return false
		}

		newWord := old | scheduledBit
		if s.word.CompareAndSwap(old, newWord) {
			return true
		}
	}
}

// setAsIdle clears the Scheduled bit unconditionally, preserving whatever
// primary state is current. This includes Closed: clearing Scheduled on a
// Closed mailbox is harmless since Closed already forecloses further
// scheduling via setAsScheduled's guard.
func (s *StatusWord) setAsIdle() {
	for {
		old := s.word.Load()
		newWord := old &^ scheduledBit
		if s.word.CompareAndSwap(old, newWord) {
			return
		}
	}
}
