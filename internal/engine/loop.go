package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/roach88/tickguess/internal/stream"
)

// Scheduler is what the engine needs from its execution context: delayed
// tasks for intervals, and Post for handing occurrences to the delivery
// goroutine.
//
// Implemented by Loop (wall clock) and testutil.VirtualScheduler.
type Scheduler interface {
	stream.Scheduler

	// Post runs task on the delivery goroutine as soon as possible, after
	// anything already queued. Returns false if the scheduler is stopped.
	Post(task func()) bool
}

// Loop is the single-writer event loop backing a live game.
//
// Thread-safety model:
//   - Post(), Schedule(), Now(), Stop(): safe from any goroutine
//   - Run(): must be called from exactly one goroutine
//   - A cancel func returned by Schedule must be called from the Run
//     goroutine for the no-run-after-cancel guarantee
type Loop struct {
	queue *taskQueue
	clock *Clock
}

var _ Scheduler = (*Loop)(nil)

// NewLoop creates a stopped loop; call Run to start processing.
func NewLoop() *Loop {
	return &Loop{
		queue: newTaskQueue(),
		clock: NewClock(),
	}
}

// Now returns the wall-clock time.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// Post enqueues task for the Run goroutine.
func (l *Loop) Post(fn func()) bool {
	return l.queue.Enqueue(&task{seq: l.clock.Next(), fn: fn})
}

// Schedule enqueues task after delay. Cancelling marks the task dead, so it
// is skipped even if its timer fired and it is already queued.
func (l *Loop) Schedule(delay time.Duration, fn func()) func() {
	t := &task{seq: l.clock.Next(), fn: fn}
	timer := time.AfterFunc(delay, func() {
		l.queue.Enqueue(t)
	})
	return func() {
		t.cancelled.Store(true)
		timer.Stop()
	}
}

// Run processes tasks until ctx is cancelled or Stop is called.
//
// CRITICAL: Must be called from exactly ONE goroutine. All stream delivery
// happens here.
func (l *Loop) Run(ctx context.Context) error {
	slog.Debug("loop starting")

	for {
		t, ok := l.queue.TryDequeue()
		if ok {
			if !t.cancelled.Load() {
				t.fn()
			}
			continue
		}

		select {
		case <-ctx.Done():
			slog.Debug("loop stopping: context cancelled")
			l.queue.Close()
			return ctx.Err()

		case <-l.queue.Wait():
			// The signal channel closes with the queue, which lands here
			// immediately.
			if l.queue.Len() == 0 && l.closed() {
				slog.Debug("loop stopping: queue closed")
				return nil
			}
		}
	}
}

// Stop closes the queue; Run returns once the queue drains.
func (l *Loop) Stop() {
	l.queue.Close()
}

func (l *Loop) closed() bool {
	l.queue.mu.Lock()
	defer l.queue.mu.Unlock()
	return l.queue.closed
}
