package stream

import (
	"errors"
	"time"

	"github.com/roach88/tickguess/internal/testutil"
)

var errBoom = errors.New("boom")

// recorder collects everything a subscription delivers.
type recorder[T any] struct {
	values    []T
	err       error
	completed bool
}

func (r *recorder[T]) observer() Observer[T] {
	return Observer[T]{
		Next:     func(v T) { r.values = append(r.values, v) },
		Error:    func(err error) { r.err = err },
		Complete: func() { r.completed = true },
	}
}

func record[T any](s Stream[T]) (*recorder[T], *Subscription) {
	r := &recorder[T]{}
	return r, s.Subscribe(r.observer())
}

// stamped pairs a value with the virtual time it was observed at.
type stamped[T any] struct {
	At    time.Duration
	Value T
}

func recordTimed[T any](v *testutil.VirtualScheduler, s Stream[T]) (*[]stamped[T], *Subscription) {
	var out []stamped[T]
	sub := s.Subscribe(Observer[T]{
		Next: func(x T) { out = append(out, stamped[T]{At: v.Elapsed(), Value: x}) },
	})
	return &out, sub
}

const ms = time.Millisecond
