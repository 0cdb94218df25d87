package stream

// Map applies f to every value.
func Map[T, U any](src Stream[T], f func(T) U) Stream[U] {
	return New(func(out *Sink[U]) {
		pipe(src, out, func(v T) { out.Next(f(v)) })
	})
}

// MapTo replaces every value with v.
func MapTo[T, U any](src Stream[T], v U) Stream[U] {
	return Map(src, func(T) U { return v })
}

// Filter forwards the values for which keep returns true.
func Filter[T any](src Stream[T], keep func(T) bool) Stream[T] {
	return New(func(out *Sink[T]) {
		pipe(src, out, func(v T) {
			if keep(v) {
				out.Next(v)
			}
		})
	})
}

// Tap calls f for every value before forwarding it. It is the hook for
// side effects that must not alter the values.
func Tap[T any](src Stream[T], f func(T)) Stream[T] {
	return New(func(out *Sink[T]) {
		pipe(src, out, func(v T) {
			f(v)
			out.Next(v)
		})
	})
}

// TakeWhile forwards values while keep holds and completes on the first
// value that fails it. That value is not forwarded.
func TakeWhile[T any](src Stream[T], keep func(T) bool) Stream[T] {
	return New(func(out *Sink[T]) {
		pipe(src, out, func(v T) {
			if !keep(v) {
				out.Complete()
				return
			}
			out.Next(v)
		})
	})
}

// SkipWhile drops values while skip holds, then forwards everything.
func SkipWhile[T any](src Stream[T], skip func(T) bool) Stream[T] {
	return New(func(out *Sink[T]) {
		skipping := true
		pipe(src, out, func(v T) {
			if skipping && skip(v) {
				return
			}
			skipping = false
			out.Next(v)
		})
	})
}

// TakeUntil forwards src until notifier emits, then completes. The notifier
// completing without a value has no effect.
func TakeUntil[T, N any](src Stream[T], notifier Stream[N]) Stream[T] {
	return New(func(out *Sink[T]) {
		subscribeFor(out, notifier, Observer[N]{
			Next:  func(N) { out.Complete() },
			Error: out.Error,
		})
		if out.Closed() {
			return
		}
		pipe(src, out, out.Next)
	})
}

// StartWith emits values synchronously on subscription, then src.
func StartWith[T any](src Stream[T], values ...T) Stream[T] {
	return New(func(out *Sink[T]) {
		for _, v := range values {
			if out.Closed() {
				return
			}
			out.Next(v)
		}
		pipe(src, out, out.Next)
	})
}

// Merge interleaves the values of all sources in arrival order. It
// completes when every source has completed; any error is terminal.
func Merge[T any](sources ...Stream[T]) Stream[T] {
	return New(func(out *Sink[T]) {
		active := len(sources)
		if active == 0 {
			out.Complete()
			return
		}
		for _, src := range sources {
			if out.Closed() {
				return
			}
			subscribeFor(out, src, Observer[T]{
				Next:  out.Next,
				Error: out.Error,
				Complete: func() {
					active--
					if active == 0 {
						out.Complete()
					}
				},
			})
		}
	})
}
