package stream

import (
	"strconv"
	"time"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/tickguess/internal/testutil"
)

func TestMapFilterTap(t *testing.T) {
	var tapped []int
	s := Map(
		Filter(Tap(Of(1, 2, 3, 4), func(v int) { tapped = append(tapped, v) }), func(v int) bool { return v%2 == 0 }),
		strconv.Itoa,
	)
	r, _ := record(s)
	assert.Equal(t, []string{"2", "4"}, r.values)
	assert.Equal(t, []int{1, 2, 3, 4}, tapped)
	assert.True(t, r.completed)
}

func TestMapTo(t *testing.T) {
	r, _ := record(MapTo(Of(1, 2), "x"))
	assert.Equal(t, []string{"x", "x"}, r.values)
}

func TestTakeWhile_CompletesOnFirstFailure(t *testing.T) {
	subj := NewSubject[int]()
	r, _ := record(TakeWhile(subj.Stream(), func(v int) bool { return v <= 3 }))

	for _, v := range []int{0, 1, 2, 3, 4, 2} {
		subj.Next(v)
	}
	assert.Equal(t, []int{0, 1, 2, 3}, r.values)
	assert.True(t, r.completed)
	assert.Equal(t, 0, subj.Observers(), "upstream released on completion")
}

func TestSkipWhile(t *testing.T) {
	r, _ := record(SkipWhile(Of(5, 6, 0, 7), func(v int) bool { return v > 3 }))
	assert.Equal(t, []int{0, 7}, r.values)
}

func TestTakeUntil(t *testing.T) {
	src := NewSubject[int]()
	stop := NewSubject[struct{}]()
	r, _ := record(TakeUntil(src.Stream(), stop.Stream()))

	src.Next(1)
	stop.Next(struct{}{})
	src.Next(2)

	assert.Equal(t, []int{1}, r.values)
	assert.True(t, r.completed)
	assert.Equal(t, 0, src.Observers())
	assert.Equal(t, 0, stop.Observers())
}

func TestTakeUntil_StopsInterval(t *testing.T) {
	v := testutil.NewVirtualScheduler()
	stop := NewSubject[struct{}]()
	got, _ := recordTimed(v, TakeUntil(Interval(v, 100*ms), stop.Stream()))

	v.Advance(250 * ms)
	stop.Next(struct{}{})
	v.Advance(time.Second)

	assert.Len(t, *got, 2)
	assert.Equal(t, 0, v.Pending(), "stopped interval leaves no timer behind")
}

func TestStartWith(t *testing.T) {
	subj := NewSubject[int]()
	r, _ := record(StartWith(subj.Stream(), 0))
	assert.Equal(t, []int{0}, r.values)
	subj.Next(1)
	assert.Equal(t, []int{0, 1}, r.values)
}

func TestMerge_ArrivalOrderAndCompletion(t *testing.T) {
	a := NewSubject[string]()
	b := NewSubject[string]()
	r, _ := record(Merge(a.Stream(), b.Stream()))

	b.Next("b1")
	a.Next("a1")
	b.Next("b2")
	a.Complete()
	assert.False(t, r.completed)
	b.Complete()

	assert.Equal(t, []string{"b1", "a1", "b2"}, r.values)
	assert.True(t, r.completed)
}

func TestMerge_ErrorIsTerminal(t *testing.T) {
	a := NewSubject[int]()
	b := NewSubject[int]()
	r, _ := record(Merge(a.Stream(), b.Stream()))

	a.Error(errBoom)
	b.Next(1)
	assert.ErrorIs(t, r.err, errBoom)
	assert.Empty(t, r.values)
	assert.Equal(t, 0, b.Observers())
}

func TestMerge_Empty(t *testing.T) {
	r, _ := record(Merge[int]())
	assert.True(t, r.completed)
}
