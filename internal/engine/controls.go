package engine

import (
	"sort"

	"github.com/roach88/tickguess/internal/game"
	"github.com/roach88/tickguess/internal/stream"
)

// Control names a surface must expose.
const (
	ControlStart   = "start"
	ControlHalf    = "half"
	ControlQuarter = "quarter"
	ControlStop    = "stop"
	ControlReset   = "reset"
	ControlText    = "text"
)

// RequiredControls lists every control Bind checks for.
var RequiredControls = []string{
	ControlStart, ControlHalf, ControlQuarter, ControlStop, ControlReset, ControlText,
}

// Occurrence is a payload-free event: a button press.
type Occurrence struct{}

// Surface is the external input/output collaborator: it owns the named
// controls and the text field.
type Surface interface {
	// Controls returns the names of the controls the surface exposes.
	Controls() []string

	// ClearText empties the text field. Clearing is not a text change.
	ClearText()
}

// Controls adapts a surface's controls into occurrence streams.
//
// The streams never complete. Occurrences enter through Press and Type,
// which must be called on the delivery goroutine (use Scheduler.Post from
// anywhere else).
type Controls struct {
	start   *stream.Subject[Occurrence]
	half    *stream.Subject[Occurrence]
	quarter *stream.Subject[Occurrence]
	stop    *stream.Subject[Occurrence]
	reset   *stream.Subject[Occurrence]
	text    *stream.Subject[string]
}

// Bind checks that surface exposes every required control and returns the
// adapted streams. A missing control is a MISSING_CONTROL error listing all
// absent names.
func Bind(surface Surface) (*Controls, error) {
	have := make(map[string]bool)
	for _, name := range surface.Controls() {
		have[name] = true
	}

	var missing []string
	for _, name := range RequiredControls {
		if !have[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, NewMissingControlError(missing)
	}

	return &Controls{
		start:   stream.NewSubject[Occurrence](),
		half:    stream.NewSubject[Occurrence](),
		quarter: stream.NewSubject[Occurrence](),
		stop:    stream.NewSubject[Occurrence](),
		reset:   stream.NewSubject[Occurrence](),
		text:    stream.NewSubject[string](),
	}, nil
}

func (c *Controls) Start() stream.Stream[Occurrence]   { return c.start.Stream() }
func (c *Controls) Half() stream.Stream[Occurrence]    { return c.half.Stream() }
func (c *Controls) Quarter() stream.Stream[Occurrence] { return c.quarter.Stream() }
func (c *Controls) Stop() stream.Stream[Occurrence]    { return c.stop.Stream() }
func (c *Controls) Reset() stream.Stream[Occurrence]   { return c.reset.Stream() }

// Text carries the full text of the field on every change.
func (c *Controls) Text() stream.Stream[string] { return c.text.Stream() }

// Speed returns the start control for s.
func (c *Controls) Speed(s game.Speed) stream.Stream[Occurrence] {
	switch s {
	case game.SpeedHalf:
		return c.Half()
	case game.SpeedQuarter:
		return c.Quarter()
	default:
		return c.Start()
	}
}

// Press delivers an occurrence on the named button control.
func (c *Controls) Press(name string) error {
	subj, ok := c.button(name)
	if !ok {
		return NewUnknownControlError(name)
	}
	subj.Next(Occurrence{})
	return nil
}

// Type delivers a text change carrying the full current text.
func (c *Controls) Type(text string) {
	c.text.Next(text)
}

func (c *Controls) button(name string) (*stream.Subject[Occurrence], bool) {
	switch name {
	case ControlStart:
		return c.start, true
	case ControlHalf:
		return c.half, true
	case ControlQuarter:
		return c.quarter, true
	case ControlStop:
		return c.stop, true
	case ControlReset:
		return c.reset, true
	}
	return nil, false
}
