package stream

// Observer receives the values, error or completion of a subscription.
// Nil callbacks are ignored.
type Observer[T any] struct {
	Next     func(T)
	Error    func(error)
	Complete func()
}

// Subscription is the cancellation handle returned by Subscribe.
type Subscription struct {
	closed    bool
	teardowns []func()
}

// Add registers a teardown that runs when the subscription closes.
// If the subscription is already closed, f runs immediately.
func (s *Subscription) Add(f func()) {
	if f == nil {
		return
	}
	if s.closed {
		f()
		return
	}
	s.teardowns = append(s.teardowns, f)
}

// Unsubscribe closes the subscription and runs its teardowns, newest first.
func (s *Subscription) Unsubscribe() {
	if s.closed {
		return
	}
	s.closed = true
	teardowns := s.teardowns
	s.teardowns = nil
	for i := len(teardowns) - 1; i >= 0; i-- {
		teardowns[i]()
	}
}

// Closed reports whether the subscription has been closed.
func (s *Subscription) Closed() bool {
	return s.closed
}

// Sink is the producer side of one subscription. It enforces the observer
// contract: nothing is delivered after Error, Complete or Unsubscribe.
type Sink[T any] struct {
	obs Observer[T]
	sub *Subscription
}

// Next delivers v unless the sink is closed.
func (s *Sink[T]) Next(v T) {
	if s.sub.closed {
		return
	}
	if s.obs.Next != nil {
		s.obs.Next(v)
	}
}

// Error terminates the subscription with err.
func (s *Sink[T]) Error(err error) {
	if s.sub.closed {
		return
	}
	// Close first so teardowns observe a terminated sink and reentrant
	// calls from the observer are dropped.
	obs := s.obs
	s.sub.Unsubscribe()
	if obs.Error != nil {
		obs.Error(err)
	}
}

// Complete terminates the subscription normally.
func (s *Sink[T]) Complete() {
	if s.sub.closed {
		return
	}
	obs := s.obs
	s.sub.Unsubscribe()
	if obs.Complete != nil {
		obs.Complete()
	}
}

// Closed reports whether the sink still accepts values.
func (s *Sink[T]) Closed() bool {
	return s.sub.closed
}

// Add registers a teardown on the sink's subscription.
func (s *Sink[T]) Add(f func()) {
	s.sub.Add(f)
}

// Stream is a cold, push-based sequence of values.
type Stream[T any] struct {
	produce func(*Sink[T])
}

// New creates a stream whose producer runs once per subscription.
func New[T any](produce func(*Sink[T])) Stream[T] {
	return Stream[T]{produce: produce}
}

// Subscribe runs the producer for obs and returns the subscription handle.
func (s Stream[T]) Subscribe(obs Observer[T]) *Subscription {
	sub := &Subscription{}
	s.subscribeWith(sub, obs)
	return sub
}

// subscribeWith runs the producer under a caller-supplied subscription, so
// the caller can cancel it while the producer is still running.
func (s Stream[T]) subscribeWith(sub *Subscription, obs Observer[T]) {
	if s.produce == nil {
		return
	}
	s.produce(&Sink[T]{obs: obs, sub: sub})
}

// Of emits the given values synchronously, then completes.
func Of[T any](values ...T) Stream[T] {
	return New(func(out *Sink[T]) {
		for _, v := range values {
			if out.Closed() {
				return
			}
			out.Next(v)
		}
		out.Complete()
	})
}

// Never emits nothing and never terminates.
func Never[T any]() Stream[T] {
	return New(func(*Sink[T]) {})
}

// Fail terminates every subscription immediately with err.
func Fail[T any](err error) Stream[T] {
	return New(func(out *Sink[T]) { out.Error(err) })
}

// Defer calls factory on each subscription and subscribes to the stream it
// returns.
func Defer[T any](factory func() Stream[T]) Stream[T] {
	return New(func(out *Sink[T]) {
		pipe(factory(), out, out.Next)
	})
}

// pipe subscribes src on behalf of out, forwarding termination and routing
// values through next.
func pipe[T, U any](src Stream[T], out *Sink[U], next func(T)) {
	subscribeFor(out, src, Observer[T]{
		Next:     next,
		Error:    out.Error,
		Complete: out.Complete,
	})
}

// subscribeFor subscribes src with obs under a subscription that is tied to
// out before the producer runs: if out closes while src is still emitting
// synchronously, src stops.
func subscribeFor[T, U any](out *Sink[U], src Stream[T], obs Observer[T]) *Subscription {
	sub := &Subscription{}
	out.Add(sub.Unsubscribe)
	src.subscribeWith(sub, obs)
	return sub
}
