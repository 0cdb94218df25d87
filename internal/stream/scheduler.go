package stream

import "time"

// Scheduler runs delayed work on the delivery goroutine.
//
// Implementations: engine.Loop (wall clock) and testutil.VirtualScheduler
// (virtual time, deterministic).
type Scheduler interface {
	// Now returns the scheduler's current time.
	Now() time.Time

	// Schedule runs task after delay on the delivery goroutine. The returned
	// cancel func guarantees task will not run once it returns, even if the
	// underlying timer already fired.
	Schedule(delay time.Duration, task func()) (cancel func())
}

// Interval emits 0, 1, 2, … once every period, starting one period after
// subscription. Deadlines are computed from the subscription time so the
// spacing does not drift. Each subscription owns its own timer and counter.
func Interval(s Scheduler, period time.Duration) Stream[int] {
	return New(func(out *Sink[int]) {
		if period <= 0 {
			out.Error(&InvalidPeriodError{Period: period})
			return
		}
		start := s.Now()
		n := 0
		cancel := func() {}
		var tick func()
		arm := func() {
			due := start.Add(time.Duration(n+1) * period)
			cancel = s.Schedule(due.Sub(s.Now()), tick)
		}
		tick = func() {
			if out.Closed() {
				return
			}
			v := n
			n++
			arm()
			out.Next(v)
		}
		arm()
		out.Add(func() { cancel() })
	})
}

// InvalidPeriodError reports a non-positive Interval period.
type InvalidPeriodError struct {
	Period time.Duration
}

func (e *InvalidPeriodError) Error() string {
	return "interval period must be positive, got " + e.Period.String()
}
