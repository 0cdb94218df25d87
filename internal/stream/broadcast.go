package stream

// Broadcast executes a source once and multicasts it to any number of
// subscribers. Unlike Share, the execution is started and stopped
// explicitly with Connect, so it outlives any individual subscriber: a
// subscriber that leaves and comes back (Repeat) does not restart the
// source.
type Broadcast[T any] struct {
	src        Stream[T]
	subject    *Subject[T]
	replay     bool
	latest     T
	has        bool
	connection *Subscription
}

// Publish prepares a broadcast of src. Nothing runs until Connect.
func Publish[T any](src Stream[T]) *Broadcast[T] {
	return &Broadcast[T]{src: src, subject: NewSubject[T]()}
}

// PublishLatest is Publish with a memory of the last value: a subscriber
// joining after the first emission receives that value immediately.
func PublishLatest[T any](src Stream[T]) *Broadcast[T] {
	b := Publish(src)
	b.replay = true
	return b
}

// Stream returns the shared side of the broadcast.
func (b *Broadcast[T]) Stream() Stream[T] {
	inner := b.subject.Stream()
	return New(func(out *Sink[T]) {
		if b.replay && b.has && !b.subject.done {
			out.Next(b.latest)
			if out.Closed() {
				return
			}
		}
		pipe(inner, out, out.Next)
	})
}

// Connect subscribes the source. Calling it again while connected returns
// the existing connection.
func (b *Broadcast[T]) Connect() *Subscription {
	if b.connection != nil && !b.connection.Closed() {
		return b.connection
	}
	conn := &Subscription{}
	b.connection = conn
	b.src.subscribeWith(conn, Observer[T]{
		Next: func(v T) {
			if b.replay {
				b.latest, b.has = v, true
			}
			b.subject.Next(v)
		},
		Error:    b.subject.Error,
		Complete: b.subject.Complete,
	})
	return conn
}

// Fail releases the connection and terminates every subscriber with err.
// Later subscribers receive err at once.
func (b *Broadcast[T]) Fail(err error) {
	if b.connection != nil {
		b.connection.Unsubscribe()
	}
	b.subject.Error(err)
}

// Observers returns the number of live subscribers.
func (b *Broadcast[T]) Observers() int {
	return b.subject.Observers()
}

// Share multicasts src with reference counting: the first subscriber starts
// the source, later ones join it, and the source is released when the last
// one leaves or it terminates. A later subscriber then starts it afresh.
func Share[T any](src Stream[T]) Stream[T] {
	var (
		subject *Subject[T]
		conn    *Subscription
		refs    int
	)
	reset := func() {
		subject, conn, refs = nil, nil, 0
	}
	return New(func(out *Sink[T]) {
		if subject == nil {
			subject = NewSubject[T]()
		}
		s := subject
		refs++
		pipe(s.Stream(), out, out.Next)
		out.Add(func() {
			if subject != s {
				return
			}
			refs--
			if refs == 0 && conn != nil {
				c := conn
				reset()
				c.Unsubscribe()
			}
		})
		if conn == nil && subject == s && !out.Closed() {
			conn = &Subscription{}
			src.subscribeWith(conn, Observer[T]{
				Next: s.Next,
				Error: func(err error) {
					if subject == s {
						reset()
					}
					s.Error(err)
				},
				Complete: func() {
					if subject == s {
						reset()
					}
					s.Complete()
				},
			})
		}
	})
}
