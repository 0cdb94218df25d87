package stream

// Repeat resubscribes to src every time it completes. Errors are terminal.
// Resubscription is iterative, so a source that completes synchronously does
// not grow the stack; such a source repeats until the result is released.
func Repeat[T any](src Stream[T]) Stream[T] {
	return New(func(out *Sink[T]) {
		var (
			current *Subscription
			running bool
			again   bool
		)
		out.Add(func() {
			if current != nil {
				current.Unsubscribe()
			}
		})

		var subscribe func()
		subscribe = func() {
			if running {
				again = true
				return
			}
			running = true
			for !out.Closed() {
				again = false
				current = &Subscription{}
				src.subscribeWith(current, Observer[T]{
					Next:  out.Next,
					Error: out.Error,
					Complete: func() {
						if !out.Closed() {
							subscribe()
						}
					},
				})
				if !again {
					break
				}
			}
			running = false
		}
		subscribe()
	})
}
