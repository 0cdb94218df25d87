package engine

import (
	"log/slog"

	"github.com/roach88/tickguess/internal/config"
	"github.com/roach88/tickguess/internal/game"
	"github.com/roach88/tickguess/internal/stream"
)

// Display is the output collaborator. All methods run on the delivery
// goroutine.
type Display interface {
	ShowState(game.State)
	ShowOutcome(Outcome)

	// ShowError is called once, with the error that terminated the game.
	ShowError(error)
}

// Engine wires controls, timers, the state fold and the scorer together.
//
// The state pipeline runs exactly once per Engine, shared through a
// broadcast by the display, the diagnostics sink and the scorer.
//
// Thread-safety model:
//   - New(): any goroutine
//   - everything else: the scheduler's delivery goroutine only
//
// INVARIANTS:
//   - Start subscribes every consumer before the state broadcast connects,
//     so all of them see the seed state
//   - Clearing the text field never produces a text occurrence
type Engine struct {
	sched     Scheduler
	controls  *Controls
	surface   Surface
	cfg       config.Config
	diag      Diagnostics
	ids       RoundIDGenerator
	increment game.Transition

	states   *stream.Broadcast[game.State]
	text     *stream.Broadcast[string]
	outcomes *stream.Broadcast[Outcome]

	display Display
	subs    *stream.Subscription
	started bool
	err     error
}

// Option configures an Engine.
type Option func(*Engine)

// WithDiagnostics sets the diagnostics sink. Default: NopDiagnostics.
func WithDiagnostics(d Diagnostics) Option {
	return func(e *Engine) {
		e.diag = d
	}
}

// WithRoundIDs sets the round id generator. Default: UUIDv7Generator.
func WithRoundIDs(g RoundIDGenerator) Option {
	return func(e *Engine) {
		e.ids = g
	}
}

// New builds the pipeline. Nothing runs until Start.
func New(sched Scheduler, controls *Controls, surface Surface, cfg config.Config, opts ...Option) *Engine {
	e := &Engine{
		sched:     sched,
		controls:  controls,
		surface:   surface,
		cfg:       cfg,
		diag:      NopDiagnostics{},
		ids:       UUIDv7Generator{},
		increment: game.Increment,
		subs:      &stream.Subscription{},
	}
	for _, opt := range opts {
		opt(e)
	}

	transitions := Transitions(sched, SelectSpeed(controls, cfg.Cadences), controls, e.increment,
		func(n int) { e.diag.Observe(LabelTick, n) })
	e.states = stream.Publish(FoldStates(transitions))

	e.text = stream.PublishLatest(stream.Tap(controls.Text(), func(text string) {
		e.diag.Observe(LabelInput, text)
	}))

	scorer := NewScorer(e.states.Stream(), e.text.Stream(), cfg.Bound, e.ids, func(g game.Guess) {
		e.diag.Observe(LabelRecord, g)
	})
	e.outcomes = stream.Publish(scorer.Rounds())

	return e
}

// States returns the shared state stream.
func (e *Engine) States() stream.Stream[game.State] {
	return e.states.Stream()
}

// Outcomes returns the shared scorer output.
func (e *Engine) Outcomes() stream.Stream[Outcome] {
	return e.outcomes.Stream()
}

// Start subscribes display and connects the pipeline, emitting the seed
// state. It may be called once.
func (e *Engine) Start(display Display) error {
	if e.started {
		return NewAlreadyStartedError()
	}
	e.started = true
	e.display = display

	e.subs.Add(e.States().Subscribe(stream.Observer[game.State]{
		Next: func(s game.State) {
			e.diag.Observe(LabelState, s)
			display.ShowState(s)
		},
		Error: e.fail,
	}).Unsubscribe)

	e.subs.Add(e.Outcomes().Subscribe(stream.Observer[Outcome]{
		Next: func(o Outcome) {
			e.diag.Observe(LabelScore, o)
			display.ShowOutcome(o)
			if o.Kind == OutcomeGameOver && e.cfg.AutoReset {
				e.sched.Post(func() {
					_ = e.controls.Press(ControlReset)
				})
			}
		},
		Error: e.fail,
	}).Unsubscribe)

	clears := stream.Merge(e.controls.Start(), e.controls.Half(), e.controls.Quarter(), e.controls.Reset())
	e.subs.Add(clears.Subscribe(stream.Observer[Occurrence]{
		Next: func(Occurrence) { e.surface.ClearText() },
	}).Unsubscribe)

	e.subs.Add(e.text.Connect().Unsubscribe)
	e.subs.Add(e.outcomes.Connect().Unsubscribe)
	e.subs.Add(e.states.Connect().Unsubscribe)

	slog.Debug("engine started", "bound", e.cfg.Bound, "auto_reset", e.cfg.AutoReset)
	return nil
}

// Stop releases every timer and subscription.
func (e *Engine) Stop() {
	e.subs.Unsubscribe()
}

// Err returns the error that terminated the state stream, if any.
func (e *Engine) Err() error {
	return e.err
}

// fail terminates the state broadcast for every subscriber. Only the first
// error is reported.
func (e *Engine) fail(err error) {
	if e.err != nil {
		return
	}
	e.err = err
	slog.Error("game terminated", "error", err)
	e.states.Fail(err)
	e.outcomes.Fail(err)
	if e.display != nil {
		e.display.ShowError(err)
	}
}
