package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/tickguess/internal/config"
	"github.com/roach88/tickguess/internal/engine"
	"github.com/roach88/tickguess/internal/game"
	"github.com/roach88/tickguess/internal/store"
	"github.com/roach88/tickguess/internal/testutil"
)

// sessionID is the fixed session every scenario records under.
const sessionID = "scenario"

// Harness is one scenario execution: the virtual clock, the engine's
// collaborators and the result being built.
type Harness struct {
	sched    *testutil.VirtualScheduler
	controls *engine.Controls
	store    *store.Store
	recorder *store.Recorder
	result   *Result
	logger   *slog.Logger
}

var (
	_ engine.Surface = (*Harness)(nil)
	_ engine.Display = (*Harness)(nil)
)

// Run executes a scenario against base (use config.Default() when there is
// no configuration file) and returns the result.
//
// Each scenario runs against a fresh in-memory trace database.
//
// Execution flow:
// 1. Bind controls and build the engine on a virtual scheduler
// 2. Start the engine (the seed state is shown at offset 0)
// 3. Advance to each step's offset and apply it
// 4. Advance to the duration
// 5. Read ticks back from the trace and evaluate assertions
func Run(scenario *Scenario, base config.Config) (*Result, error) {
	st, err := store.Open(store.MemoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	cfg := base
	if scenario.Bound != nil {
		cfg.Bound = *scenario.Bound
	}
	if scenario.AutoReset != nil {
		cfg.AutoReset = *scenario.AutoReset
	}

	ctx := context.Background()
	h := &Harness{
		sched:  testutil.NewVirtualScheduler(),
		store:  st,
		result: NewResult(scenario.Name),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}

	h.recorder, err = store.NewRecorder(ctx, st, sessionID, testutil.NewDeterministicClock(), h.sched.Now, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start trace: %w", err)
	}

	h.controls, err = engine.Bind(h)
	if err != nil {
		return nil, err
	}

	eng := engine.New(h.sched, h.controls, h, cfg,
		engine.WithDiagnostics(h.recorder),
		engine.WithRoundIDs(testutil.NewSequenceGenerator("")),
	)
	if err := eng.Start(h); err != nil {
		return nil, err
	}
	defer eng.Stop()

	for i, step := range scenario.Steps {
		h.sched.AdvanceTo(testutil.Epoch.Add(step.At))
		if err := h.apply(step); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}
	h.sched.AdvanceTo(testutil.Epoch.Add(scenario.Duration))

	if err := h.recorder.Err(); err != nil {
		return nil, fmt.Errorf("trace write failed: %w", err)
	}

	ticks, err := st.ReadObservations(ctx, sessionID, engine.LabelTick)
	if err != nil {
		return nil, err
	}
	for _, o := range ticks {
		h.result.Ticks = append(h.result.Ticks, o.Elapsed)
	}

	for _, msg := range EvaluateAssertions(h.result, scenario.Assertions) {
		h.result.AddError(msg)
	}

	h.logger.Info("scenario finished",
		"scenario", scenario.Name,
		"pass", h.result.Pass,
		"rounds", len(h.result.Rounds),
	)

	return h.result, nil
}

func (h *Harness) apply(step Step) error {
	if step.Type != nil {
		h.trace(fmt.Sprintf("type %q", *step.Type))
		h.controls.Type(*step.Type)
		return nil
	}
	h.trace("press " + step.Press)
	return h.controls.Press(step.Press)
}

func (h *Harness) trace(event string) {
	h.result.Trace = append(h.result.Trace, TraceLine{At: h.sched.Elapsed(), Event: event})
}

// Controls implements engine.Surface.
func (h *Harness) Controls() []string {
	return engine.RequiredControls
}

// ClearText implements engine.Surface.
func (h *Harness) ClearText() {
	h.result.Clears++
	h.trace("clear")
}

// ShowState implements engine.Display.
func (h *Harness) ShowState(s game.State) {
	h.result.States = append(h.result.States, s.Count)
	h.trace("state " + s.String())
}

// ShowOutcome implements engine.Display.
func (h *Harness) ShowOutcome(o engine.Outcome) {
	if o.Kind == engine.OutcomeGameOver {
		h.result.Rounds = append(h.result.Rounds, o)
		h.trace(fmt.Sprintf("round %s game over score=%d", o.Round, o.Score))
		return
	}
	h.trace(fmt.Sprintf("round %s count=%d text=%q matched=%t score=%d",
		o.Round, o.Count, o.Text, o.Matched, o.Score))
}

// ShowError implements engine.Display.
func (h *Harness) ShowError(err error) {
	h.result.Err = err.Error()
	var re *engine.RuntimeError
	if errors.As(err, &re) {
		h.result.ErrCode = string(re.Code)
	}
	h.trace("error " + firstLine(err.Error()))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// FormatTrace renders the trace one line per event.
func FormatTrace(r *Result) string {
	var b strings.Builder
	for _, line := range r.Trace {
		b.WriteString(line.String())
		b.WriteByte('\n')
	}
	return b.String()
}
