package testutil

import (
	"container/heap"
	"time"
)

// Epoch is the instant every VirtualScheduler starts at.
var Epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// VirtualScheduler runs scheduled tasks in virtual time.
//
// Nothing happens until Advance is called. Tasks run in (due time, schedule
// order) order on the caller's goroutine, so a test fully controls timing and
// interleaving. It satisfies stream.Scheduler and engine.Scheduler.
//
// Thread-safety: not safe for concurrent use; drive it from the test goroutine.
type VirtualScheduler struct {
	now   time.Time
	seq   *DeterministicClock
	tasks taskHeap
}

// NewVirtualScheduler creates a scheduler whose clock reads Epoch.
func NewVirtualScheduler() *VirtualScheduler {
	return &VirtualScheduler{now: Epoch, seq: NewDeterministicClock()}
}

// Now returns the current virtual time.
func (v *VirtualScheduler) Now() time.Time {
	return v.now
}

// Elapsed returns the virtual time passed since Epoch.
func (v *VirtualScheduler) Elapsed() time.Duration {
	return v.now.Sub(Epoch)
}

// Schedule queues task to run delay after the current virtual time.
// Negative delays are treated as zero.
func (v *VirtualScheduler) Schedule(delay time.Duration, task func()) func() {
	if delay < 0 {
		delay = 0
	}
	t := &virtualTask{due: v.now.Add(delay), seq: v.seq.Next(), fn: task}
	heap.Push(&v.tasks, t)
	return func() { t.cancelled = true }
}

// Post queues task to run at the current virtual time, after anything
// already due now.
func (v *VirtualScheduler) Post(task func()) bool {
	v.Schedule(0, task)
	return true
}

// Advance moves virtual time forward by d, running every task that falls
// due on the way, including tasks scheduled by tasks.
func (v *VirtualScheduler) Advance(d time.Duration) {
	v.AdvanceTo(v.now.Add(d))
}

// AdvanceTo moves virtual time forward to target.
func (v *VirtualScheduler) AdvanceTo(target time.Time) {
	for v.tasks.Len() > 0 {
		next := v.tasks[0]
		if next.due.After(target) {
			break
		}
		heap.Pop(&v.tasks)
		if next.cancelled {
			continue
		}
		if next.due.After(v.now) {
			v.now = next.due
		}
		next.fn()
	}
	if target.After(v.now) {
		v.now = target
	}
}

// Flush runs everything due at the current instant.
func (v *VirtualScheduler) Flush() {
	v.AdvanceTo(v.now)
}

// Pending returns the number of queued tasks that have not been cancelled.
func (v *VirtualScheduler) Pending() int {
	n := 0
	for _, t := range v.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

type virtualTask struct {
	due       time.Time
	seq       int64
	fn        func()
	cancelled bool
}

type taskHeap []*virtualTask

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if !h[i].due.Equal(h[j].due) {
		return h[i].due.Before(h[j].due)
	}
	return h[i].seq < h[j].seq
}

func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *taskHeap) Push(x any) { *h = append(*h, x.(*virtualTask)) }

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}
