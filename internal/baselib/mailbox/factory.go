package mailbox

import "fmt"

// MailboxFactory produces Mailboxes composed with one of the four UserQueue
// variants, selected per-actor by a MailboxConfig. It validates bounded
// variant parameters at construction time rather than deferring failures to
// first use.
type MailboxFactory struct {
	dispatcher Dispatcher
	dlo        DeadLetterSink
	events     EventStream
}

// NewMailboxFactory constructs a MailboxFactory. dispatcher and dlo are
// required; events may be nil, in which case handler-failure
// notifications are discarded.
func NewMailboxFactory(
	dispatcher Dispatcher, dlo DeadLetterSink, events EventStream,
) *MailboxFactory {

	return &MailboxFactory{
		dispatcher: dispatcher,
		dlo:        dlo,
		events:     events,
	}
}

// New validates cfg and constructs a Mailbox wired to actor, identified by
// id. Returns ErrInvalidMailboxConfig if a bounded variant is configured
// with a negative capacity or without a PushTimeout, or a priority variant
// is configured without a Comparator.
func (f *MailboxFactory) New(
	id PID, cfg MailboxConfig, actor ActorCell,
) (*Mailbox, error) {

	uq, err := newUserQueue(cfg)
	if err != nil {
		return nil, err
	}

	return newMailbox(id, uq, actor, f.dispatcher, f.dlo, f.events), nil
}

// newUserQueue validates cfg and constructs the selected UserQueue variant.
func newUserQueue(cfg MailboxConfig) (UserQueue, error) {
	switch cfg.Variant {
	case VariantUnboundedFIFO:
		return newUnboundedFIFOQueue(), nil

	case VariantBoundedFIFO:
		if cfg.Capacity < 0 {
			return nil, fmt.Errorf(
				"%w: negative capacity %d",
				ErrInvalidMailboxConfig, cfg.Capacity,
			)
		}
		if cfg.PushTimeout.IsNone() {
			return nil, fmt.Errorf(
				"%w: bounded variant requires a PushTimeout",
				ErrInvalidMailboxConfig,
			)
		}

		return newBoundedFIFOQueue(
			cfg.Capacity, cfg.PushTimeout.UnwrapOr(0),
		), nil

	case VariantUnboundedPriority:
		if cfg.Less == nil {
			return nil, fmt.Errorf(
				"%w: priority variant requires a Comparator",
				ErrInvalidMailboxConfig,
			)
		}

		return newUnboundedPriorityQueue(cfg.Less), nil

	case VariantBoundedPriority:
		if cfg.Capacity < 0 {
			return nil, fmt.Errorf(
				"%w: negative capacity %d",
				ErrInvalidMailboxConfig, cfg.Capacity,
			)
		}
		if cfg.PushTimeout.IsNone() {
			return nil, fmt.Errorf(
				"%w: bounded variant requires a PushTimeout",
				ErrInvalidMailboxConfig,
			)
		}
		if cfg.Less == nil {
			return nil, fmt.Errorf(
				"%w: priority variant requires a Comparator",
				ErrInvalidMailboxConfig,
			)
		}

		return newBoundedPriorityQueue(
			cfg.Capacity, cfg.PushTimeout.UnwrapOr(0), cfg.Less,
		), nil

	default:
		return nil, fmt.Errorf(
			"%w: unknown variant %d", ErrInvalidMailboxConfig, cfg.Variant,
		)
	}
}
