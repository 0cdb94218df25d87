// Package terminal is the interactive surface for the game: it reads keys
// from a raw-mode terminal and paints the state, the guess and the score
// with ANSI escapes.
//
// Keys:
//
//	s  start (1000ms)     x  stop
//	h  half (500ms)       r  reset
//	q  quarter (250ms)    Esc / Ctrl-C  quit
//
// Any other printable rune is appended to the guess; Backspace deletes
// the last rune.
package terminal
