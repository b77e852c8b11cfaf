package mailbox

import "sync"

// Registry is a PID-keyed lookup table of live Mailboxes. It is how the
// dispatcher/actor/mailbox reference cycle is broken: the dispatcher never
// holds a direct *Mailbox field for "the currently scheduled mailboxes" as
// part of its own state beyond the run queue itself, and external callers
// that only have a PID (e.g. a supervisor delivering a system message to a
// named actor) look the mailbox up here instead of threading a pointer
// through unrelated call paths.
type Registry struct {
	mu        sync.RWMutex
	mailboxes map[PID]*Mailbox
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		mailboxes: make(map[PID]*Mailbox),
	}
}

// Register adds mb under its own PID. Overwrites any prior entry for the
// same PID.
func (r *Registry) Register(mb *Mailbox) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.mailboxes[mb.ID()] = mb
}

// Unregister removes the entry for id, if present.
func (r *Registry) Unregister(id PID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.mailboxes, id)
}

// Lookup returns the mailbox registered under id, if any.
func (r *Registry) Lookup(id PID) (*Mailbox, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mb, ok := r.mailboxes[id]
	return mb, ok
}

// Len returns the number of currently registered mailboxes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.mailboxes)
}
