package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ErrCorruptState is returned when a state that cannot come out of the fold
// reaches the join stage.
var ErrCorruptState = errors.New("corrupt state")

// Guess is the latest pairing of the running count with the typed text.
type Guess struct {
	Count int    `json:"count"`
	Text  string `json:"text"`
}

// NewGuess joins a state with the latest text. It fails only on a state
// the fold could never have produced.
func NewGuess(s State, text string) (Guess, error) {
	if s.Count < 0 {
		return Guess{}, fmt.Errorf("%w: negative count %d", ErrCorruptState, s.Count)
	}
	return Guess{Count: s.Count, Text: text}, nil
}

// Matches reports whether the typed text parses to the count.
func (g Guess) Matches() bool {
	n, ok := ParseGuess(g.Text)
	return ok && n == g.Count
}

// ParseGuess reads an integer prefix from text.
//
// The text is NFKC-normalised first, so fullwidth digits count. Leading
// whitespace is skipped, one '+' or '-' is accepted, then the longest run of
// ASCII digits is read; whatever follows is ignored. No digits, or a value
// outside the int range, yields ok == false.
func ParseGuess(text string) (n int, ok bool) {
	s := strings.TrimLeftFunc(norm.NFKC.String(text), unicode.IsSpace)

	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	v, err := strconv.Atoi(sign + s[:end])
	if err != nil {
		return 0, false
	}
	return v, true
}
