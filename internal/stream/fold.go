package stream

// Scan folds src over seed and emits every intermediate accumulator. A
// step error terminates the stream. Each subscription folds from seed.
func Scan[T, A any](src Stream[T], seed A, step func(A, T) (A, error)) Stream[A] {
	return New(func(out *Sink[A]) {
		acc := seed
		pipe(src, out, func(v T) {
			next, err := step(acc, v)
			if err != nil {
				out.Error(err)
				return
			}
			acc = next
			out.Next(acc)
		})
	})
}

// Reduce folds src over seed and emits the final accumulator once src
// completes.
func Reduce[T, A any](src Stream[T], seed A, step func(A, T) (A, error)) Stream[A] {
	return New(func(out *Sink[A]) {
		acc := seed
		subscribeFor(out, src, Observer[T]{
			Next: func(v T) {
				next, err := step(acc, v)
				if err != nil {
					out.Error(err)
					return
				}
				acc = next
			},
			Error: out.Error,
			Complete: func() {
				out.Next(acc)
				out.Complete()
			},
		})
	})
}
