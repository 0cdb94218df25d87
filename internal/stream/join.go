package stream

// WithLatestFrom pairs every value of src with the most recent value of
// other. Values of src that arrive before other has emitted are dropped.
// other completing has no effect; an error from either side, or from
// combine, is terminal.
func WithLatestFrom[T, U, R any](src Stream[T], other Stream[U], combine func(T, U) (R, error)) Stream[R] {
	return New(func(out *Sink[R]) {
		var (
			latest U
			has    bool
		)
		subscribeFor(out, other, Observer[U]{
			Next: func(v U) {
				latest, has = v, true
			},
			Error: out.Error,
		})
		if out.Closed() {
			return
		}
		pipe(src, out, func(v T) {
			if !has {
				return
			}
			r, err := combine(v, latest)
			if err != nil {
				out.Error(err)
				return
			}
			out.Next(r)
		})
	})
}
