package mailbox

import (
	"context"
	"sync"
	"time"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// Dispatcher is the external executor contract a Mailbox depends on. It
// decides when a mailbox becomes eligible for execution and guarantees that
// at most one goroutine runs a given mailbox's run() at a time.
type Dispatcher interface {
	// RegisterForExecution consults canBeScheduledForExecution using the
	// supplied hints and, if eligible, CAS-claims the Scheduled bit and
	// hands the mailbox to an executor. Implementations must guard the
	// claim with setAsScheduled so that concurrent callers enqueue the
	// mailbox for execution at most once per scheduled cycle.
	RegisterForExecution(mb *Mailbox, hasMsgHint, hasSysHint bool)

	// Throughput is the maximum number of user-message invocations
	// performed within one run(). A value <= 0 means unbounded (a single
	// message is delivered per run(), matching the spec's "else" branch
	// for a dispatcher with no throughput bound configured).
	Throughput() int

	// Deadline is the maximum wall-clock duration a single run() may
	// spend invoking user messages, or fn.None for no wall-clock bound.
	Deadline() fn.Option[time.Duration]
}

// WorkerPoolDispatcher is a reference Dispatcher backed by a fixed pool of
// worker goroutines draining a shared registration channel. It is a small
// many-mailboxes-to-few-workers scheduler: RegisterForExecution claims the
// Scheduled bit and pushes the mailbox onto the shared channel; each worker
// pulls mailboxes off that channel and calls run() on them one at a time,
// which is exactly the single-runner guarantee the contract requires.
type WorkerPoolDispatcher struct {
	cfg DispatcherConfig

	runQueue chan *Mailbox

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	stopOnce sync.Once
}

// NewWorkerPoolDispatcher constructs a WorkerPoolDispatcher and starts its
// worker goroutines. Stop must be called to release them.
func NewWorkerPoolDispatcher(cfg DispatcherConfig) *WorkerPoolDispatcher {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 1
	}
	if cfg.Throughput <= 0 {
		cfg.Throughput = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	d := &WorkerPoolDispatcher{
		cfg:      cfg,
		runQueue: make(chan *Mailbox, 1024),
		ctx:      ctx,
		cancel:   cancel,
	}

	for range cfg.WorkerCount {
		d.wg.Add(1)
		go d.worker()
	}

	return d
}

func (d *WorkerPoolDispatcher) worker() {
	defer d.wg.Done()

	for {
		select {
		case mb := <-d.runQueue:
			mb.Run(d.ctx)
		case <-d.ctx.Done():
			return
		}
	}
}

// RegisterForExecution implements Dispatcher.
func (d *WorkerPoolDispatcher) RegisterForExecution(
	mb *Mailbox, hasMsgHint, hasSysHint bool,
) {

	if !mb.CanBeScheduledForExecution(hasMsgHint, hasSysHint) {
		return
	}

	if !mb.status.setAsScheduled() {
		return
	}

	select {
	case d.runQueue <- mb:
	case <-d.ctx.Done():
		// Dispatcher shutting down; clear the bit we just claimed so
		// a future dispatcher (or direct drain) isn't permanently
		// locked out of scheduling this mailbox.
		mb.status.setAsIdle()
	}
}

// Throughput implements Dispatcher.
func (d *WorkerPoolDispatcher) Throughput() int {
	return d.cfg.Throughput
}

// Deadline implements Dispatcher.
func (d *WorkerPoolDispatcher) Deadline() fn.Option[time.Duration] {
	return d.cfg.Deadline
}

// Stop cancels all worker goroutines and waits for them to exit. Idempotent.
func (d *WorkerPoolDispatcher) Stop() {
	d.stopOnce.Do(func() {
		d.cancel()
		d.wg.Wait()
	})
}
