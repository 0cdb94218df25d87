package game

import (
	"errors"
	"fmt"
	"math"
)

// State is the running countdown state.
type State struct {
	Count int `json:"count"`
}

// Initial is the state every session starts from and every reset returns to.
var Initial = State{Count: 0}

// String renders the state for logs and traces.
func (s State) String() string {
	return fmt.Sprintf("count=%d", s.Count)
}

// ErrCountOverflow is returned by Increment when the count cannot grow.
var ErrCountOverflow = errors.New("count overflow")

// Transition maps a state to its successor. Transitions are values: they
// flow through the pipeline and are applied by the state fold in arrival
// order.
type Transition func(State) (State, error)

// Increment advances the count by one.
func Increment(s State) (State, error) {
	if s.Count == math.MaxInt {
		return s, ErrCountOverflow
	}
	return State{Count: s.Count + 1}, nil
}

// Reset returns the initial state regardless of the current one.
func Reset(State) (State, error) {
	return Initial, nil
}

// Apply is the fold step: next = t(current).
func Apply(current State, t Transition) (State, error) {
	return t(current)
}
