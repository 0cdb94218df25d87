package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepeat_ResubscribesOnCompletion(t *testing.T) {
	subj := NewSubject[int]()
	rounds := 0
	s := Repeat(Defer(func() Stream[int] {
		rounds++
		return Reduce(TakeWhile(subj.Stream(), func(v int) bool { return v <= 3 }), 0, sum)
	}))
	r, _ := record(s)

	for _, v := range []int{1, 2, 3, 4, 1, 1, 9} {
		subj.Next(v)
	}

	assert.Equal(t, []int{6, 2}, r.values)
	assert.False(t, r.completed)
	assert.Equal(t, 3, rounds)
	assert.Equal(t, 1, subj.Observers())
}

func TestRepeat_SynchronousSourceStopsWhenReleased(t *testing.T) {
	n := 0
	s := TakeWhile(Repeat(Of(1)), func(int) bool {
		n++
		return n <= 1000
	})
	r, _ := record(s)
	assert.Len(t, r.values, 1000)
	assert.True(t, r.completed)
}

func TestRepeat_ErrorIsTerminal(t *testing.T) {
	subj := NewSubject[int]()
	r, _ := record(Repeat(subj.Stream()))
	subj.Error(errBoom)
	assert.ErrorIs(t, r.err, errBoom)
}
