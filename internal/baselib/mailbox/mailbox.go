package mailbox

import (
	"context"
	"sync"
	"time"
)

// Mailbox composes a StatusWord, a SystemQueue, and a UserQueue variant into
// the per-actor data structure a Dispatcher repeatedly drains. It owns its
// two queues and status word outright; its ActorCell and Dispatcher
// references are non-owning interface values (the actor owns the mailbox,
// and callers holding only a PID look the mailbox up in a Registry), which
// is how the mailbox/actor/dispatcher reference cycle is broken.
type Mailbox struct {
	id PID

	status    StatusWord
	sysQueue  SystemQueue
	userQueue UserQueue

	actor      ActorCell
	dispatcher Dispatcher
	dlo        DeadLetterSink
	events     EventStream

	cleanupOnce sync.Once
}

// newMailbox wires the queue, dispatcher and actor references together. Use
// MailboxFactory.New to construct a Mailbox with a validated UserQueue
// variant.
func newMailbox(
	id PID, userQueue UserQueue, actor ActorCell, dispatcher Dispatcher,
	dlo DeadLetterSink, events EventStream,
) *Mailbox {

	if events == nil {
		events = discardEventStream{}
	}

	return &Mailbox{
		id:         id,
		userQueue:  userQueue,
		actor:      actor,
		dispatcher: dispatcher,
		dlo:        dlo,
		events:     events,
	}
}

// ID returns the mailbox's PID.
func (mb *Mailbox) ID() PID {
	return mb.id
}

// Enqueue submits a user envelope. It forwards to the UserQueue variant and,
// on success, asks the dispatcher to schedule this mailbox. Fails
// (ErrEnqueueTimeout or ctx's error) only for the bounded variants on
// timeout or cancellation; always fails with ErrMailboxClosed once Closed.
func (mb *Mailbox) Enqueue(ctx context.Context, env Envelope) error {
	if mb.status.isClosed() {
		return ErrMailboxClosed
	}

	if err := mb.userQueue.enqueue(ctx, env); err != nil {
		return err
	}

	mb.dispatcher.RegisterForExecution(mb, true, false)
	return nil
}

// SystemEnqueue submits a system message. Always succeeds and never blocks.
func (mb *Mailbox) SystemEnqueue(msg *SystemMessage) {
	mb.sysQueue.systemEnqueue(msg)
	mb.dispatcher.RegisterForExecution(mb, false, true)
}

// CanBeScheduledForExecution reports whether the dispatcher should schedule
// this mailbox now, given hints about messages that may have just arrived.
func (mb *Mailbox) CanBeScheduledForExecution(hasMsgHint, hasSysHint bool) bool {
	switch primary(mb.status.status()) {
	case Closed:
		return false

	case Open:
		return hasMsgHint || hasSysHint ||
			mb.userQueue.hasMessages() || mb.sysQueue.hasSystemMessages()

	default: // Suspended
		return hasSysHint || mb.sysQueue.hasSystemMessages()
	}
}

// Run is the dispatcher entry point. The caller must hold the logical
// single-runner token for this mailbox (guaranteed externally by the
// Dispatcher's setAsScheduled CAS gate).
func (mb *Mailbox) Run(ctx context.Context) {
	if !mb.status.isClosed() {
		mb.processAllSystemMessages(ctx)
		mb.processMailbox(ctx)
	}

	// Unconditional; re-registration carries false hints on purpose.
	// canBeScheduledForExecution falls back to reading hasMessages /
	// hasSystemMessages directly on that path, so arrivals that raced
	// with setAsIdle are still recovered.
	mb.status.setAsIdle()
	mb.dispatcher.RegisterForExecution(mb, false, false)
}

// processAllSystemMessages drains the SystemQueue to exhaustion, delivering
// each message in arrival order via actor.SystemInvoke. No user message may
// be processed while this is in progress; processMailbox re-checks after
// every single user invocation for exactly this reason.
func (mb *Mailbox) processAllSystemMessages(ctx context.Context) {
	for {
		chain := mb.sysQueue.systemDrain()
		if chain == nil {
			return
		}

		cur := chain
		for cur != nil {
			next := cur.next
			cur.next = nil

			msg := cur
			cur = next

			if err := mb.actor.SystemInvoke(ctx, msg.Message); err != nil {
				undelivered := chainLen(cur)

				mb.events.PublishError(ErrorEvent{
					Err:          err,
					ActorID:      mb.id,
					DroppedCount: undelivered,
				})

				log.WarnS(ctx, "System message handler failed",
					err,
					"actor_id", mb.id.String(),
					"dropped_count", undelivered)

				return
			}
		}
	}
}

// chainLen counts the nodes remaining in a SystemMessage chain.
func chainLen(c *SystemMessage) int {
	n := 0
	for ; c != nil; c = c.next {
		n++
	}
	return n
}

// processMailbox delivers user messages up to the dispatcher's throughput
// bound (or exactly one, if the dispatcher reports no bound), interleaving a
// full system-message drain after every single invocation.
func (mb *Mailbox) processMailbox(ctx context.Context) {
	if !mb.status.shouldProcessMessage() {
		return
	}

	env, ok := mb.userQueue.dequeue()
	if !ok {
		return
	}

	throughput := mb.dispatcher.Throughput()
	if throughput <= 0 {
		mb.actor.Invoke(ctx, env)
		mb.processAllSystemMessages(ctx)
		return
	}

	var deadline time.Time
	hasDeadline := mb.dispatcher.Deadline().IsSome()
	mb.dispatcher.Deadline().WhenSome(func(d time.Duration) {
		deadline = time.Now().Add(d)
	})

	processed := 0
	for {
		mb.actor.Invoke(ctx, env)
		mb.processAllSystemMessages(ctx)

		if !mb.status.shouldProcessMessage() {
			return
		}

		processed++
		if processed >= throughput {
			return
		}
		if hasDeadline && !time.Now().Before(deadline) {
			return
		}

		env, ok = mb.userQueue.dequeue()
		if !ok {
			return
		}
	}
}

// CleanUp drains both queues to the DeadLetterSink exactly once, resetting
// each SystemMessage's next link before forwarding. System messages are
// drained first, in arrival order, followed by user messages in the
// UserQueue variant's own order.
func (mb *Mailbox) CleanUp(ctx context.Context) {
	mb.cleanupOnce.Do(func() {
		drainedSys := 0
		chain := mb.sysQueue.systemDrain()
		for chain != nil {
			next := chain.next
			chain.next = nil

			mb.dlo.SystemEnqueue(chain)
			drainedSys++
			chain = next
		}

		drainedUser := 0
		for {
			env, ok := mb.userQueue.dequeue()
			if !ok {
				break
			}

			mb.dlo.Enqueue(env)
			drainedUser++
		}

		log.DebugS(ctx, "Mailbox cleaned up",
			"actor_id", mb.id.String(),
			"drained_system_messages", drainedSys,
			"drained_user_messages", drainedUser)
	})
}
