package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVirtualScheduler_RunsInDueOrder(t *testing.T) {
	v := NewVirtualScheduler()
	var got []string

	v.Schedule(300*time.Millisecond, func() { got = append(got, "c") })
	v.Schedule(100*time.Millisecond, func() { got = append(got, "a") })
	v.Schedule(200*time.Millisecond, func() { got = append(got, "b") })

	v.Advance(150 * time.Millisecond)
	assert.Equal(t, []string{"a"}, got)
	assert.Equal(t, 150*time.Millisecond, v.Elapsed())

	v.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestVirtualScheduler_TiesRunInScheduleOrder(t *testing.T) {
	v := NewVirtualScheduler()
	var got []int
	for i := 0; i < 5; i++ {
		i := i
		v.Schedule(time.Second, func() { got = append(got, i) })
	}
	v.Advance(time.Second)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestVirtualScheduler_NowDuringTask(t *testing.T) {
	v := NewVirtualScheduler()
	var at time.Duration
	v.Schedule(250*time.Millisecond, func() { at = v.Now().Sub(Epoch) })
	v.Advance(time.Second)
	assert.Equal(t, 250*time.Millisecond, at)
}

func TestVirtualScheduler_Cancel(t *testing.T) {
	v := NewVirtualScheduler()
	ran := false
	cancel := v.Schedule(time.Second, func() { ran = true })
	assert.Equal(t, 1, v.Pending())

	cancel()
	assert.Equal(t, 0, v.Pending())
	v.Advance(2 * time.Second)
	assert.False(t, ran)
}

func TestVirtualScheduler_TasksScheduledByTasks(t *testing.T) {
	v := NewVirtualScheduler()
	var ticks []time.Duration
	var tick func()
	tick = func() {
		ticks = append(ticks, v.Elapsed())
		v.Schedule(100*time.Millisecond, tick)
	}
	v.Schedule(100*time.Millisecond, tick)

	v.Advance(350 * time.Millisecond)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond}, ticks)
}

func TestVirtualScheduler_PostRunsOnFlush(t *testing.T) {
	v := NewVirtualScheduler()
	ran := false
	v.Post(func() { ran = true })
	assert.False(t, ran)

	v.Flush()
	assert.True(t, ran)
	assert.Equal(t, time.Duration(0), v.Elapsed())
}
