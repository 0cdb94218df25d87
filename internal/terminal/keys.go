package terminal

import (
	"bufio"
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/roach88/tickguess/internal/engine"
)

// KeyType classifies a key press.
type KeyType int

const (
	KeyRune KeyType = iota
	KeyBackspace
	KeyQuit
)

// Key is one decoded key press.
type Key struct {
	Type KeyType
	Rune rune
}

// readKeys decodes keys from r until it fails (EOF or closed input).
// Escape sequences (arrows and friends) are swallowed; a bare ESC quits.
func readKeys(r io.Reader, emit func(Key)) error {
	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err != nil {
			return err
		}

		switch b {
		case 3: // ^C
			emit(Key{Type: KeyQuit})
			continue
		case 8, 127: // Backspace (ASCII/DEL)
			emit(Key{Type: KeyBackspace})
			continue
		case 27: // ESC or the start of a sequence
			if br.Buffered() == 0 {
				emit(Key{Type: KeyQuit})
				continue
			}
			skipEscape(br)
			continue
		}

		if b < 0x20 {
			continue
		}

		buf := []byte{b}
		for br.Buffered() > 0 && !utf8.FullRune(buf) {
			nb, _ := br.ReadByte()
			buf = append(buf, nb)
		}
		if ru, _ := utf8.DecodeRune(buf); ru != utf8.RuneError && !unicode.IsControl(ru) {
			emit(Key{Type: KeyRune, Rune: ru})
		}
	}
}

// skipEscape drops the rest of an ESC sequence: CSI up to its final byte,
// or the single byte of an Alt-modified key.
func skipEscape(br *bufio.Reader) {
	nb, _ := br.ReadByte()
	if nb != '[' {
		return
	}
	for br.Buffered() > 0 {
		b, _ := br.ReadByte()
		if b >= 0x40 && b <= 0x7e {
			return
		}
	}
}

// controlKeys maps keys to button controls.
var controlKeys = map[rune]string{
	's': engine.ControlStart,
	'h': engine.ControlHalf,
	'q': engine.ControlQuarter,
	'x': engine.ControlStop,
	'r': engine.ControlReset,
}

// Action is what a key does to the game.
type Action struct {
	// Control is the button to press, if any.
	Control string

	// Text is the new field text when TextChanged is set.
	Text        string
	TextChanged bool

	Quit bool
}

// Interpret decides what k does given the current field text.
func Interpret(k Key, text string) Action {
	switch k.Type {
	case KeyQuit:
		return Action{Quit: true}
	case KeyBackspace:
		if text == "" {
			return Action{}
		}
		_, size := utf8.DecodeLastRuneInString(text)
		return Action{Text: text[:len(text)-size], TextChanged: true}
	}

	if name, ok := controlKeys[unicode.ToLower(k.Rune)]; ok {
		return Action{Control: name}
	}
	return Action{Text: text + string(k.Rune), TextChanged: true}
}
