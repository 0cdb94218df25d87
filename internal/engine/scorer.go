package engine

import (
	"fmt"

	"github.com/roach88/tickguess/internal/game"
	"github.com/roach88/tickguess/internal/stream"
)

// OutcomeKind distinguishes running reports from the end of a round.
type OutcomeKind string

const (
	OutcomeProgress OutcomeKind = "progress"
	OutcomeGameOver OutcomeKind = "game_over"
)

// Outcome is what the scorer reports to the display.
type Outcome struct {
	Round   string      `json:"round"`
	Kind    OutcomeKind `json:"kind"`
	Count   int         `json:"count,omitempty"`
	Text    string      `json:"text,omitempty"`
	Matched bool        `json:"matched,omitempty"`
	Score   int         `json:"score"`
}

func (o Outcome) String() string {
	if o.Kind == OutcomeGameOver {
		return fmt.Sprintf("Game Over (score %d)", o.Score)
	}
	return fmt.Sprintf("count %d, guess %q, score %d", o.Count, o.Text, o.Score)
}

// Scorer evaluates guesses against the running count in bounded rounds.
//
// A round joins every state with count <= bound to the latest text, scores
// exact matches and completes on the first state past the bound, reporting
// Game Over with the final score. The next round subscribes again at once;
// it skips states still past the bound and starts counting when the count
// is back within it (after a reset).
type Scorer struct {
	states   stream.Stream[game.State]
	text     stream.Stream[string]
	bound    int
	ids      RoundIDGenerator
	onRecord func(game.Guess)
}

// NewScorer creates a scorer over a shared state stream and a text stream
// that remembers its latest value. onRecord may be nil.
func NewScorer(states stream.Stream[game.State], text stream.Stream[string], bound int, ids RoundIDGenerator, onRecord func(game.Guess)) *Scorer {
	if onRecord == nil {
		onRecord = func(game.Guess) {}
	}
	return &Scorer{states: states, text: text, bound: bound, ids: ids, onRecord: onRecord}
}

// Round returns a single round: progress outcomes, then one game-over
// outcome, then completion. Each subscription is a new round with a new id.
func (s *Scorer) Round() stream.Stream[Outcome] {
	return stream.Defer(func() stream.Stream[Outcome] {
		id := s.ids.Generate()

		bounded := stream.TakeWhile(
			stream.SkipWhile(s.states, func(st game.State) bool { return st.Count > s.bound }),
			func(st game.State) bool { return st.Count <= s.bound },
		)

		guesses := stream.WithLatestFrom(bounded, s.text, func(st game.State, text string) (game.Guess, error) {
			g, err := game.NewGuess(st, text)
			if err != nil {
				return g, NewCorruptStateError(id, err)
			}
			return g, nil
		})
		records := stream.Share(stream.Tap(guesses, s.onRecord))

		progress := stream.Scan(records, Outcome{Round: id, Kind: OutcomeProgress},
			func(acc Outcome, g game.Guess) (Outcome, error) {
				acc.Count, acc.Text, acc.Matched = g.Count, g.Text, g.Matches()
				if acc.Matched {
					acc.Score++
				}
				return acc, nil
			})

		score := stream.Reduce(stream.Filter(records, game.Guess.Matches), 0,
			func(n int, _ game.Guess) (int, error) { return n + 1, nil })
		over := stream.Map(score, func(n int) Outcome {
			return Outcome{Round: id, Kind: OutcomeGameOver, Score: n}
		})

		return stream.Merge(progress, over)
	})
}

// Rounds runs rounds back to back. It only ends on error.
func (s *Scorer) Rounds() stream.Stream[Outcome] {
	return stream.Repeat(s.Round())
}
