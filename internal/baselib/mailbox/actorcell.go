package mailbox

import "context"

// ActorCell is the opaque actor-side collaborator a Mailbox delivers to. The
// mailbox never interprets message payloads; it only calls these two
// callbacks in the orderings described by run()'s algorithm.
type ActorCell interface {
	// Invoke delivers a user message. Any error or panic arising from
	// processing is the actor runtime's concern (supervision), not the
	// mailbox's; Invoke does not return an error here by design.
	Invoke(ctx context.Context, env Envelope)

	// SystemInvoke delivers a lifecycle control message. Unlike Invoke,
	// an error here is caught by the mailbox's run loop and published to
	// the EventStream; the rest of the drained system-message chain is
	// dropped. The error is not returned from Run, which goes on to
	// process user messages as usual.
	SystemInvoke(ctx context.Context, msg Message) error
}

// ErrorEvent describes a system-message handler failure, published to an
// EventStream. It is the only place the failing error is reported.
type ErrorEvent struct {
	// Err is the error returned by SystemInvoke.
	Err error

	// ActorID identifies the mailbox whose handler failed.
	ActorID PID

	// DroppedCount is the number of system messages that were still
	// queued behind the failing one in the same drained chain, and were
	// dropped as a result.
	DroppedCount int
}

// EventStream is the external collaborator that receives error
// notifications raised by system-message handler failures. This mirrors the
// "publish an error event" requirement without prescribing how the runtime
// routes or persists it.
type EventStream interface {
	// PublishError notifies the stream of a handler failure.
	PublishError(ev ErrorEvent)
}

// discardEventStream is a no-op EventStream used when a Mailbox is
// constructed without one explicitly configured.
type discardEventStream struct{}

func (discardEventStream) PublishError(ErrorEvent) {}
