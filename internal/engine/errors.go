package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/tickguess/internal/game"
)

// RuntimeError represents an error detected while building or running the
// game pipeline.
//
// Runtime errors include:
//   - Missing control: the surface lacks a required control (startup, fatal)
//   - Transition failure: a transition function failed inside the fold
//   - Corrupt state: the join stage received an impossible state
//
// Transition and join failures terminate the state stream for every
// subscriber.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// Round identifies the affected round, if any.
	Round string

	// Details contains additional context.
	Details map[string]string

	// Err is the underlying cause, if any.
	Err error
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeMissingControl indicates the surface lacks a named control.
	ErrCodeMissingControl RuntimeErrorCode = "MISSING_CONTROL"

	// ErrCodeUnknownControl indicates an occurrence for a control that does not exist.
	ErrCodeUnknownControl RuntimeErrorCode = "UNKNOWN_CONTROL"

	// ErrCodeTransitionFailed indicates a transition function failed.
	ErrCodeTransitionFailed RuntimeErrorCode = "TRANSITION_FAILED"

	// ErrCodeCorruptState indicates the join stage saw an impossible state.
	ErrCodeCorruptState RuntimeErrorCode = "CORRUPT_STATE"

	// ErrCodeAlreadyStarted indicates Start was called twice.
	ErrCodeAlreadyStarted RuntimeErrorCode = "ALREADY_STARTED"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Round != "" {
		msg = fmt.Sprintf("%s (round=%s)", msg, e.Round)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

func hasCode(err error, code RuntimeErrorCode) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}

// IsMissingControlError returns true if the error reports absent controls.
func IsMissingControlError(err error) bool {
	return hasCode(err, ErrCodeMissingControl)
}

// IsTransitionError returns true if a transition function failed.
func IsTransitionError(err error) bool {
	return hasCode(err, ErrCodeTransitionFailed)
}

// IsCorruptStateError returns true if the join stage rejected a state.
func IsCorruptStateError(err error) bool {
	return hasCode(err, ErrCodeCorruptState)
}

// NewMissingControlError creates a RuntimeError listing absent controls.
func NewMissingControlError(missing []string) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeMissingControl,
		Message: "surface is missing controls: " + strings.Join(missing, ", "),
		Details: map[string]string{"missing": strings.Join(missing, ",")},
	}
}

// NewUnknownControlError creates a RuntimeError for an unknown control name.
func NewUnknownControlError(name string) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeUnknownControl,
		Message: fmt.Sprintf("no control named %q", name),
	}
}

// NewTransitionError wraps a transition failure at state s.
func NewTransitionError(s game.State, err error) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeTransitionFailed,
		Message: "transition failed",
		Details: map[string]string{"count": fmt.Sprintf("%d", s.Count)},
		Err:     err,
	}
}

// NewCorruptStateError wraps a join failure in round.
func NewCorruptStateError(round string, err error) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeCorruptState,
		Message: "join rejected state",
		Round:   round,
		Err:     err,
	}
}

// NewAlreadyStartedError reports a second Start.
func NewAlreadyStartedError() *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeAlreadyStarted,
		Message: "engine already started",
	}
}
