package mailbox

import "github.com/btcsuite/btclog/v2"

// log is the package-level logger used throughout the mailbox package. It is
// disabled by default; callers that want visibility into mailbox scheduling
// and drain behavior should call UseLogger with a configured sub-system
// logger.
var log btclog.Logger = btclog.Disabled

// UseLogger sets the package-wide logger used by the mailbox package. This
// should be called once during application startup, before any mailboxes are
// constructed.
func UseLogger(logger btclog.Logger) {
	log = logger
}
