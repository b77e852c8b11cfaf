package mailbox

import "context"

// DeadLetterSink is the external contract for the destination of messages a
// closed mailbox can no longer deliver. Implementations must never reject;
// cleanUp relies on that to make draining infallible.
type DeadLetterSink interface {
	// Enqueue receives a user envelope that could not be delivered.
	Enqueue(env Envelope)

	// SystemEnqueue receives a system message that could not be
	// delivered. msg.next is always nil by the time it reaches the
	// sink.
	SystemEnqueue(msg *SystemMessage)
}

// LoggingDeadLetterSink is a reference DeadLetterSink that logs every
// undeliverable message at Debug level and otherwise discards it. It
// satisfies the narrow Enqueue/SystemEnqueue contract directly, with no
// dead-letter actor behind it.
type LoggingDeadLetterSink struct {
	ctx context.Context
}

// NewLoggingDeadLetterSink constructs a LoggingDeadLetterSink. ctx is used
// only to attach tracing metadata to log lines.
func NewLoggingDeadLetterSink(ctx context.Context) *LoggingDeadLetterSink {
	return &LoggingDeadLetterSink{ctx: ctx}
}

// Enqueue implements DeadLetterSink.
func (s *LoggingDeadLetterSink) Enqueue(env Envelope) {
	log.DebugS(s.ctx, "Message undeliverable, routed to dead letters",
		"msg_type", env.Message.MessageType(),
		"sender", env.Sender.String())
}

// SystemEnqueue implements DeadLetterSink.
func (s *LoggingDeadLetterSink) SystemEnqueue(msg *SystemMessage) {
	log.DebugS(s.ctx, "System message undeliverable, routed to dead letters",
		"msg_type", msg.Message.MessageType())
}
