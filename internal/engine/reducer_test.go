package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tickguess/internal/game"
	"github.com/roach88/tickguess/internal/stream"
)

func collectStates(s stream.Stream[game.State]) (*[]int, *error) {
	var counts []int
	var err error
	s.Subscribe(stream.Observer[game.State]{
		Next:  func(st game.State) { counts = append(counts, st.Count) },
		Error: func(e error) { err = e },
	})
	return &counts, &err
}

func TestFoldStates_SeedFirst(t *testing.T) {
	counts, _ := collectStates(FoldStates(stream.Never[game.Transition]()))
	assert.Equal(t, []int{0}, *counts)
}

func TestFoldStates_AppliesInArrivalOrder(t *testing.T) {
	transitions := stream.Of[game.Transition](
		game.Increment, game.Increment, game.Reset, game.Increment, game.Increment, game.Increment,
	)
	counts, err := collectStates(FoldStates(transitions))

	assert.NoError(t, *err)
	assert.Equal(t, []int{0, 1, 2, 0, 1, 2, 3}, *counts)
}

func TestFoldStates_EachSubscriptionFoldsFromSeed(t *testing.T) {
	folded := FoldStates(stream.Of[game.Transition](game.Increment, game.Increment))
	a, _ := collectStates(folded)
	b, _ := collectStates(folded)
	assert.Equal(t, *a, *b)
}

func TestFoldStates_TransitionErrorIsTerminal(t *testing.T) {
	boom := errors.New("boom")
	bad := func(game.State) (game.State, error) { return game.State{}, boom }
	transitions := stream.Of[game.Transition](game.Increment, bad, game.Increment)

	counts, err := collectStates(FoldStates(transitions))

	assert.Equal(t, []int{0, 1}, *counts)
	require.Error(t, *err)
	assert.True(t, IsTransitionError(*err))
	assert.ErrorIs(t, *err, boom)

	var re *RuntimeError
	require.ErrorAs(t, *err, &re)
	assert.Equal(t, "1", re.Details["count"])
}
