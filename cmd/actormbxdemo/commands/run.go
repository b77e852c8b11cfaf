package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/btcsuite/btclog/v2"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/roasbeef/actormbx/internal/baselib/mailbox"
	"github.com/roasbeef/actormbx/internal/build"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the mailbox/dispatcher demo simulation",
	RunE:  runDemo,
}

// demoLog is the commands package's own sub-system logger, distinct from
// the mailbox package's internal logger, set up alongside it in
// setupLogging so both share the same handler set.
var demoLog btclog.Logger = btclog.Disabled

// greeting is a demo user message.
type greeting struct {
	mailbox.BaseMessage
	text string
}

func (g greeting) MessageType() string { return "greeting" }

// shutdown is a demo system message.
type shutdown struct {
	mailbox.BaseMessage
}

func (shutdown) MessageType() string { return "shutdown" }

// printingActor is a minimal ActorCell that logs every delivery.
type printingActor struct {
	name string
}

func (a *printingActor) Invoke(ctx context.Context, env mailbox.Envelope) {
	demoLog.TraceS(ctx, "Demo actor invoked",
		"actor", a.name, "msg_type", env.Message.MessageType())

	if g, ok := env.Message.(greeting); ok {
		fmt.Printf("[%s] received: %s\n", a.name, g.text)
	}
}

func (a *printingActor) SystemInvoke(ctx context.Context, msg mailbox.Message) error {
	demoLog.TraceS(ctx, "Demo actor system invoked",
		"actor", a.name, "msg_type", msg.MessageType())

	fmt.Printf("[%s] system message: %s\n", a.name, msg.MessageType())
	return nil
}

// loggingEventStream publishes handler-failure notifications as log lines.
type loggingEventStream struct{}

func (loggingEventStream) PublishError(ev mailbox.ErrorEvent) {
	demoLog.ErrorS(context.Background(),
		"System message handler failed", ev.Err,
		"actor_id", ev.ActorID.String(),
		"dropped_count", ev.DroppedCount)
}

func runDemo(cmd *cobra.Command, args []string) error {
	if err := setupLogging(); err != nil {
		return err
	}

	ctx := context.Background()

	disp := mailbox.NewWorkerPoolDispatcher(mailbox.DispatcherConfig{
		Throughput:  10,
		WorkerCount: 2,
	})
	defer disp.Stop()

	dlo := mailbox.NewLoggingDeadLetterSink(ctx)
	factory := mailbox.NewMailboxFactory(disp, dlo, loggingEventStream{})

	fifo, err := factory.New(
		mailbox.NewPID(),
		mailbox.DefaultMailboxConfig(),
		&printingActor{name: "unbounded-fifo"},
	)
	if err != nil {
		return fmt.Errorf("failed to create fifo mailbox: %w", err)
	}

	bounded, err := factory.New(
		mailbox.NewPID(),
		mailbox.MailboxConfig{
			Variant:     mailbox.VariantBoundedFIFO,
			Capacity:    4,
			PushTimeout: fn.Some(time.Second),
		},
		&printingActor{name: "bounded-fifo"},
	)
	if err != nil {
		return fmt.Errorf("failed to create bounded mailbox: %w", err)
	}

	for i, text := range []string{"hello", "from", "the", "mailbox", "core"} {
		env := mailbox.Envelope{Message: greeting{text: text}}

		if i%2 == 0 {
			if err := fifo.Enqueue(ctx, env); err != nil {
				fmt.Fprintf(os.Stderr, "fifo enqueue failed: %v\n", err)
			}
		} else {
			if err := bounded.Enqueue(ctx, env); err != nil {
				fmt.Fprintf(os.Stderr, "bounded enqueue failed: %v\n", err)
			}
		}
	}

	fifo.SystemEnqueue(mailbox.NewSystemMessage(shutdown{}))

	// Give the worker pool a moment to drain before the demo exits.
	time.Sleep(100 * time.Millisecond)

	fifo.CleanUp(ctx)
	bounded.CleanUp(ctx)

	return nil
}

func setupLogging() error {
	var handlers []btclog.Handler
	handlers = append(handlers, btclog.NewDefaultHandler(os.Stderr))

	logDirExpanded := expandHome(logDir)
	if logDirExpanded != "" {
		rotator := build.NewRotatingLogWriter()
		err := rotator.InitLogRotator(&build.LogRotatorConfig{
			LogDir:         logDirExpanded,
			MaxLogFiles:    maxLogFiles,
			MaxLogFileSize: maxLogFileSize,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr,
				"failed to init log rotator: %v "+
					"(continuing without file logging)\n", err)
		} else {
			handlers = append(handlers, btclog.NewDefaultHandler(rotator))
		}
	}

	combined := build.NewHandlerSet(handlers...)
	sharedLogger := btclog.NewSLogger(combined)

	mailbox.UseLogger(sharedLogger)
	demoLog = sharedLogger

	return nil
}
