package mailbox

import "fmt"

// ErrEnqueueTimeout indicates that a bounded user-message enqueue could not
// complete within its configured push timeout. The mailbox itself is
// unaffected; the caller retains ownership of the envelope.
var ErrEnqueueTimeout = fmt.Errorf("couldn't enqueue message to mailbox: push timeout elapsed")

// ErrMailboxClosed indicates that an enqueue was attempted against a mailbox
// whose status word has already transitioned to Closed.
var ErrMailboxClosed = fmt.Errorf("mailbox closed")

// ErrInvalidMailboxConfig indicates that a MailboxFactory call was given an
// invalid configuration: a negative capacity or a missing PushTimeout for
// one of the two bounded variants, or a missing Comparator for one of the
// two priority variants.
var ErrInvalidMailboxConfig = fmt.Errorf("invalid mailbox configuration")
