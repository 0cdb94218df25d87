package engine

import (
	"time"

	"github.com/roach88/tickguess/internal/game"
	"github.com/roach88/tickguess/internal/stream"
)

// Transitions turns ticks and resets into transition functions.
//
// Every cadence switches to a fresh CancellableInterval; the previous one is
// released before the new one is armed. Each tick becomes increment and
// passes through onTick first. Resets are merged outside the switch, so
// they apply whether or not a timer is running.
func Transitions(
	s stream.Scheduler,
	cadences stream.Stream[time.Duration],
	c *Controls,
	increment game.Transition,
	onTick func(int),
) stream.Stream[game.Transition] {
	ticks := stream.SwitchMap(cadences, func(cadence time.Duration) stream.Stream[game.Transition] {
		return stream.MapTo(stream.Tap(CancellableInterval(s, cadence, c.Stop()), onTick), increment)
	})
	return stream.Merge(ticks, stream.MapTo(c.Reset(), game.Transition(game.Reset)))
}

// FoldStates folds transitions over game.Initial. The seed is emitted on
// subscription. A failing transition terminates the stream with a
// TRANSITION_FAILED error.
func FoldStates(transitions stream.Stream[game.Transition]) stream.Stream[game.State] {
	folded := stream.Scan(transitions, game.Initial, func(current game.State, t game.Transition) (game.State, error) {
		next, err := game.Apply(current, t)
		if err != nil {
			return current, NewTransitionError(current, err)
		}
		return next, nil
	})
	return stream.StartWith(folded, game.Initial)
}
