package mailbox

import "github.com/google/uuid"

// BaseMessage is a helper struct that can be embedded in message types
// defined outside this package to satisfy the Message interface's unexported
// messageMarker method.
type BaseMessage struct{}

// messageMarker implements the unexported method for the Message interface,
// allowing types that embed BaseMessage to satisfy it.
func (BaseMessage) messageMarker() {}

// Message is a sealed interface for payloads carried by the mailbox. The
// mailbox treats the payload as opaque; only MessageType is consulted, for
// logging and dead-letter bookkeeping. The interface is "sealed" by the
// unexported messageMarker method (see BaseMessage).
type Message interface {
	messageMarker()

	// MessageType returns the type name of the message, used for routing
	// and diagnostics.
	MessageType() string
}

// PID is a stable, opaque identity handle for a mailbox. It is used as the
// Registry key and as the identity attached to log lines,
// so that separate mailboxes never collide even if the owning actor reuses
// a human-readable name.
type PID struct {
	// ID is the unique identifier for this mailbox's owning actor.
	ID string
}

// NewPID generates a fresh PID backed by a random UUID.
func NewPID() PID {
	return PID{ID: uuid.NewString()}
}

// String implements fmt.Stringer.
func (p PID) String() string {
	return p.ID
}

// Envelope pairs a user message with its sender's identity. The mailbox
// never inspects Message beyond MessageType(); Sender is opaque metadata
// forwarded to the actor on delivery.
type Envelope struct {
	// Message is the user payload being delivered.
	Message Message

	// Sender is the PID of the envelope's originator, if known. The zero
	// value indicates an anonymous sender.
	Sender PID
}

// SystemMessage is a lifecycle control message (create, suspend, resume,
// terminate, watch, ...). Each instance carries a mutable next link used
// exclusively by the SystemQueue; a SystemMessage not resident in a queue
// has next == nil.
type SystemMessage struct {
	// Message is the opaque control payload.
	Message Message

	// next links to the next-older message in the SystemQueue's internal
	// stack. Callers outside this package must never read or write it.
	next *SystemMessage
}

// NewSystemMessage wraps a Message for submission to a SystemQueue.
func NewSystemMessage(msg Message) *SystemMessage {
	return &SystemMessage{Message: msg}
}
