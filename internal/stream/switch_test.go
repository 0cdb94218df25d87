package stream

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/tickguess/internal/testutil"
)

func TestSwitchMap_DropsPreviousInner(t *testing.T) {
	v := testutil.NewVirtualScheduler()
	periods := NewSubject[time.Duration]()
	s := SwitchMap(periods.Stream(), func(p time.Duration) Stream[string] {
		return Map(Interval(v, p), func(n int) string { return p.String() })
	})
	got, _ := recordTimed(v, s)

	periods.Next(1000 * ms)
	v.Advance(2500 * ms)
	periods.Next(250 * ms)
	v.Advance(600 * ms)

	assert.Equal(t, []stamped[string]{
		{1000 * ms, "1s"},
		{2000 * ms, "1s"},
		{2750 * ms, "250ms"},
		{3000 * ms, "250ms"},
	}, *got)
	assert.Equal(t, 1, v.Pending(), "only the newest interval is armed")
}

func TestSwitchMap_QuickSuccessionKeepsOnlyLast(t *testing.T) {
	v := testutil.NewVirtualScheduler()
	periods := NewSubject[time.Duration]()
	got, _ := recordTimed(v, SwitchMap(periods.Stream(), func(p time.Duration) Stream[time.Duration] {
		return MapTo(Interval(v, p), p)
	}))

	periods.Next(1000 * ms)
	v.Advance(100 * ms)
	periods.Next(500 * ms)
	v.Advance(100 * ms)
	periods.Next(250 * ms)
	v.Advance(2 * time.Second)

	for _, s := range *got {
		assert.Equal(t, 250*ms, s.Value)
	}
	assert.Len(t, *got, 8)
}

func TestSwitchMap_CompletesAfterOuterAndInner(t *testing.T) {
	outer := NewSubject[int]()
	inner := NewSubject[int]()
	r, _ := record(SwitchMap(outer.Stream(), func(int) Stream[int] { return inner.Stream() }))

	outer.Next(1)
	outer.Complete()
	assert.False(t, r.completed)
	inner.Next(7)
	inner.Complete()

	assert.Equal(t, []int{7}, r.values)
	assert.True(t, r.completed)
}

func TestSwitchMap_SynchronousInner(t *testing.T) {
	r, _ := record(SwitchMap(Of(1, 2), func(v int) Stream[int] { return Of(v, v*10) }))
	assert.Equal(t, []int{1, 10, 2, 20}, r.values)
	assert.True(t, r.completed)
}

func TestSwitchMap_UnsubscribeReleasesInner(t *testing.T) {
	v := testutil.NewVirtualScheduler()
	outer := NewSubject[int]()
	_, sub := record(SwitchMap(outer.Stream(), func(int) Stream[int] { return Interval(v, 100*ms) }))
	outer.Next(1)
	assert.Equal(t, 1, v.Pending())

	sub.Unsubscribe()
	assert.Equal(t, 0, v.Pending())
	assert.Equal(t, 0, outer.Observers())
}
