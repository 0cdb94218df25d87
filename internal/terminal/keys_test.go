package terminal

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func decode(t *testing.T, input string) []Key {
	t.Helper()
	var keys []Key
	err := readKeys(bytes.NewReader([]byte(input)), func(k Key) { keys = append(keys, k) })
	assert.ErrorIs(t, err, io.EOF)
	return keys
}

func TestReadKeys(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Key
	}{
		{"runes", "s12", []Key{{Type: KeyRune, Rune: 's'}, {Type: KeyRune, Rune: '1'}, {Type: KeyRune, Rune: '2'}}},
		{"utf8", "３", []Key{{Type: KeyRune, Rune: '３'}}},
		{"backspace variants", "\x7f\x08", []Key{{Type: KeyBackspace}, {Type: KeyBackspace}}},
		{"ctrl-c", "\x03", []Key{{Type: KeyQuit}}},
		{"bare esc", "\x1b", []Key{{Type: KeyQuit}}},
		{"arrow swallowed", "\x1b[A1", []Key{{Type: KeyRune, Rune: '1'}}},
		{"csi with params swallowed", "\x1b[1;5C2", []Key{{Type: KeyRune, Rune: '2'}}},
		{"other controls dropped", "\r\n\t", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decode(t, tt.input))
		})
	}
}

func TestInterpret(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		text string
		want Action
	}{
		{"start", Key{Type: KeyRune, Rune: 's'}, "", Action{Control: "start"}},
		{"half upper", Key{Type: KeyRune, Rune: 'H'}, "", Action{Control: "half"}},
		{"quarter", Key{Type: KeyRune, Rune: 'q'}, "1", Action{Control: "quarter"}},
		{"stop", Key{Type: KeyRune, Rune: 'x'}, "", Action{Control: "stop"}},
		{"reset", Key{Type: KeyRune, Rune: 'r'}, "", Action{Control: "reset"}},
		{"digit appends", Key{Type: KeyRune, Rune: '3'}, "1", Action{Text: "13", TextChanged: true}},
		{"backspace", Key{Type: KeyBackspace}, "1３", Action{Text: "1", TextChanged: true}},
		{"backspace on empty", Key{Type: KeyBackspace}, "", Action{}},
		{"quit", Key{Type: KeyQuit}, "12", Action{Quit: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Interpret(tt.key, tt.text))
		})
	}
}
