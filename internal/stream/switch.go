package stream

// SwitchMap projects every value of src to an inner stream and forwards only
// the most recent inner stream. The previous inner subscription is released
// before the next one is created, so two inner streams never run at once.
//
// The result completes once src has completed and the current inner stream
// (if any) has completed too.
func SwitchMap[T, U any](src Stream[T], project func(T) Stream[U]) Stream[U] {
	return New(func(out *Sink[U]) {
		var (
			inner     *Subscription
			innerLive bool
			outerDone bool
		)
		out.Add(func() {
			if inner != nil {
				inner.Unsubscribe()
			}
		})

		subscribeFor(out, src, Observer[T]{
			Next: func(v T) {
				if inner != nil {
					inner.Unsubscribe()
				}
				sub := &Subscription{}
				inner = sub
				innerLive = true
				project(v).subscribeWith(sub, Observer[U]{
					Next:  out.Next,
					Error: out.Error,
					Complete: func() {
						if inner != sub {
							return
						}
						innerLive = false
						if outerDone {
							out.Complete()
						}
					},
				})
			},
			Error: out.Error,
			Complete: func() {
				outerDone = true
				if !innerLive {
					out.Complete()
				}
			},
		})
	})
}
