package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/tickguess/internal/config"
	"github.com/roach88/tickguess/internal/game"
	"github.com/roach88/tickguess/internal/testutil"
)

const ms = time.Millisecond

// fakeSurface exposes a configurable set of controls and counts clears.
type fakeSurface struct {
	names  []string
	clears int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{names: RequiredControls}
}

func (s *fakeSurface) Controls() []string { return s.names }
func (s *fakeSurface) ClearText()         { s.clears++ }

type seenState struct {
	At    time.Duration
	Count int
}

// recDisplay records everything shown, stamped with virtual time.
type recDisplay struct {
	sched    *testutil.VirtualScheduler
	states   []seenState
	outcomes []Outcome
	errs     []error
}

func (d *recDisplay) ShowState(s game.State) {
	d.states = append(d.states, seenState{At: d.sched.Elapsed(), Count: s.Count})
}
func (d *recDisplay) ShowOutcome(o Outcome) { d.outcomes = append(d.outcomes, o) }
func (d *recDisplay) ShowError(err error)   { d.errs = append(d.errs, err) }

func (d *recDisplay) gameOvers() []Outcome {
	var out []Outcome
	for _, o := range d.outcomes {
		if o.Kind == OutcomeGameOver {
			out = append(out, o)
		}
	}
	return out
}

func (d *recDisplay) counts() []int {
	out := make([]int, len(d.states))
	for i, s := range d.states {
		out[i] = s.Count
	}
	return out
}

// diagLog captures diagnostics by label.
type diagLog map[string][]any

func (l diagLog) Observe(label string, value any) { l[label] = append(l[label], value) }

// rig is one engine running in virtual time.
type rig struct {
	t        *testing.T
	sched    *testutil.VirtualScheduler
	surface  *fakeSurface
	controls *Controls
	engine   *Engine
	display  *recDisplay
	diag     diagLog
}

func newRig(t *testing.T, cfg config.Config, opts ...Option) *rig {
	t.Helper()
	sched := testutil.NewVirtualScheduler()
	surface := newFakeSurface()
	controls, err := Bind(surface)
	require.NoError(t, err)

	diag := diagLog{}
	opts = append([]Option{WithDiagnostics(diag), WithRoundIDs(testutil.NewSequenceGenerator(""))}, opts...)
	return &rig{
		t:        t,
		sched:    sched,
		surface:  surface,
		controls: controls,
		engine:   New(sched, controls, surface, cfg, opts...),
		display:  &recDisplay{sched: sched},
		diag:     diag,
	}
}

func (r *rig) start() *rig {
	r.t.Helper()
	require.NoError(r.t, r.engine.Start(r.display))
	return r
}

func (r *rig) press(name string) {
	r.t.Helper()
	require.NoError(r.t, r.controls.Press(name))
}

func (r *rig) advanceTo(d time.Duration) {
	r.sched.AdvanceTo(testutil.Epoch.Add(d))
}

// withIncrement replaces the tick transition.
func withIncrement(t game.Transition) Option {
	return func(e *Engine) {
		e.increment = t
	}
}

func failAt(count int) game.Transition {
	return func(s game.State) (game.State, error) {
		if s.Count == count {
			return s, fmt.Errorf("refusing to pass %d", count)
		}
		return game.Increment(s)
	}
}
