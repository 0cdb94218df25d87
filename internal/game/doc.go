// Package game holds the values that flow through the countdown pipeline:
// the running State, the Transition functions folded over it, the Guess
// pairing a count with typed text, and the guess parser.
//
// Everything here is an immutable value. The only accumulation happens
// inside the engine's folds.
package game
