package stream

// Subject is a hot source: values pushed with Next reach every current
// subscriber. It is how external occurrences enter a pipeline.
type Subject[T any] struct {
	sinks []*Sink[T]
	done  bool
	err   error
}

// NewSubject creates an empty subject.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

// Stream returns the subscribable side of the subject. Subscribing after the
// subject terminated replays the termination only.
func (s *Subject[T]) Stream() Stream[T] {
	return New(func(out *Sink[T]) {
		if s.done {
			if s.err != nil {
				out.Error(s.err)
			} else {
				out.Complete()
			}
			return
		}
		s.sinks = append(s.sinks, out)
		out.Add(func() { s.remove(out) })
	})
}

// Next delivers v to a snapshot of the current subscribers.
func (s *Subject[T]) Next(v T) {
	if s.done {
		return
	}
	for _, sink := range s.snapshot() {
		sink.Next(v)
	}
}

// Error terminates every subscriber with err.
func (s *Subject[T]) Error(err error) {
	if s.done {
		return
	}
	s.done, s.err = true, err
	for _, sink := range s.snapshot() {
		sink.Error(err)
	}
}

// Complete terminates every subscriber normally.
func (s *Subject[T]) Complete() {
	if s.done {
		return
	}
	s.done = true
	for _, sink := range s.snapshot() {
		sink.Complete()
	}
}

// Observers returns the number of live subscribers.
func (s *Subject[T]) Observers() int {
	return len(s.sinks)
}

func (s *Subject[T]) snapshot() []*Sink[T] {
	out := make([]*Sink[T], len(s.sinks))
	copy(out, s.sinks)
	return out
}

func (s *Subject[T]) remove(target *Sink[T]) {
	for i, sink := range s.sinks {
		if sink == target {
			s.sinks = append(s.sinks[:i:i], s.sinks[i+1:]...)
			return
		}
	}
}
