package mailbox

import (
	"strconv"
	"testing"

	"pgregory.net/rapid"
)

// TestSystemQueueProperty_FIFO verifies that for any sequence of
// systemEnqueue calls from a single producer, the concatenation of
// subsequent systemDrain calls returns the messages in that same order.
func TestSystemQueueProperty_FIFO(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var q SystemQueue

		n := rapid.IntRange(0, 50).Draw(rt, "n")

		var pushed []string
		for i := 0; i < n; i++ {
			tag := strconv.Itoa(i)
			pushed = append(pushed, tag)
			q.systemEnqueue(NewSystemMessage(testSysMsg{tag: tag}))

			// Occasionally drain mid-stream, mimicking a dispatcher
			// that interleaves drains between bursts of arrivals.
			if rapid.Bool().Draw(rt, "drainNow") {
				drainAndCheck(rt, &q, &pushed)
			}
		}

		drainAndCheck(rt, &q, &pushed)

		if len(pushed) != 0 {
			rt.Fatalf("messages remained undrained: %v", pushed)
		}
	})
}

// drainAndCheck drains q fully and asserts the result is a prefix of
// *pending, removing that prefix from *pending.
func drainAndCheck(rt *rapid.T, q *SystemQueue, pending *[]string) {
	var drained []string
	for {
		chain := q.systemDrain()
		if chain == nil {
			break
		}
		for cur := chain; cur != nil; cur = cur.next {
			drained = append(drained, cur.Message.MessageType())
		}
	}

	if len(drained) > len(*pending) {
		rt.Fatalf("drained more than pushed: %v vs %v", drained, *pending)
	}

	for i, tag := range drained {
		if (*pending)[i] != tag {
			rt.Fatalf("order mismatch at %d: got %s want %s",
				i, tag, (*pending)[i])
		}
	}

	*pending = (*pending)[len(drained):]
}
