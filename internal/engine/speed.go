package engine

import (
	"time"

	"github.com/roach88/tickguess/internal/config"
	"github.com/roach88/tickguess/internal/game"
	"github.com/roach88/tickguess/internal/stream"
)

// SelectSpeed merges the three start controls into one cadence stream.
func SelectSpeed(c *Controls, cadences config.Cadences) stream.Stream[time.Duration] {
	sources := make([]stream.Stream[time.Duration], 0, len(game.Speeds))
	for _, s := range game.Speeds {
		sources = append(sources, stream.MapTo(c.Speed(s), cadences.For(s)))
	}
	return stream.Merge(sources...)
}

// CancellableInterval ticks every cadence until stop fires, then completes
// for good. Each call is an independent timer.
func CancellableInterval(s stream.Scheduler, cadence time.Duration, stop stream.Stream[Occurrence]) stream.Stream[int] {
	return stream.TakeUntil(stream.Interval(s, cadence), stop)
}
