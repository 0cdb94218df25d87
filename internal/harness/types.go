package harness

import (
	"fmt"
	"time"

	"github.com/roach88/tickguess/internal/engine"
)

// TraceLine is one thing that happened at a virtual offset.
type TraceLine struct {
	At    time.Duration `json:"at"`
	Event string        `json:"event"`
}

// String renders the line as "<ms>ms <event>".
func (l TraceLine) String() string {
	return fmt.Sprintf("%dms %s", l.At.Milliseconds(), l.Event)
}

// Result is the outcome of a scenario run.
type Result struct {
	// Scenario is the scenario name.
	Scenario string `json:"scenario"`

	// Pass is true if every assertion held.
	Pass bool `json:"pass"`

	// Errors contains assertion failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Trace contains everything the surface and display saw, in order.
	Trace []TraceLine `json:"trace"`

	// States are the counts shown, in order.
	States []int `json:"states"`

	// Rounds are the completed rounds (game-over outcomes).
	Rounds []engine.Outcome `json:"rounds"`

	// Ticks are the offsets of every timer tick, read back from the
	// diagnostic trace.
	Ticks []time.Duration `json:"ticks"`

	// Clears counts text field clears.
	Clears int `json:"clears"`

	// Err is the error that terminated the game, if any.
	Err string `json:"err,omitempty"`

	// ErrCode is Err's RuntimeError code, if any.
	ErrCode string `json:"err_code,omitempty"`
}

// NewResult creates a new passing result.
func NewResult(name string) *Result {
	return &Result{
		Scenario: name,
		Pass:     true,
		Errors:   []string{},
		Trace:    []TraceLine{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Scores returns the final score of each completed round.
func (r *Result) Scores() []int {
	scores := make([]int, len(r.Rounds))
	for i, o := range r.Rounds {
		scores[i] = o.Score
	}
	return scores
}
