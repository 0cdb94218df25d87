package terminal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/roach88/tickguess/internal/engine"
	"github.com/roach88/tickguess/internal/game"
)

// Terminal is the surface and display for interactive play.
//
// Thread-safety model:
//   - ReadKeys runs on its own goroutine and only hands keys to the
//     scheduler with Post
//   - Surface and Display methods, and key handling, run on the
//     scheduler's delivery goroutine
//   - Render output is serialized by a mutex
type Terminal struct {
	in  io.Reader
	out io.Writer
	mu  sync.Mutex

	oldState *term.State
	fd       int

	controls *engine.Controls
	onQuit   func()

	text    string
	count   int
	score   int
	status  string
	failure string
}

var (
	_ engine.Surface = (*Terminal)(nil)
	_ engine.Display = (*Terminal)(nil)
)

// New creates a terminal over in and out. Raw mode is only attempted when
// in is a terminal.
func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out, fd: -1, status: "press s, h or q to start"}
}

// Raw switches the input terminal to raw mode. Callers must defer Restore.
// Non-terminal input (a pipe, a test buffer) is left alone.
func (t *Terminal) Raw() error {
	f, ok := t.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	t.fd = int(f.Fd())
	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	t.oldState = state
	enableVirtualTerminal()
	fmt.Fprint(t.out, "\x1b[?25l")
	return nil
}

// Restore undoes Raw and shows the cursor again.
func (t *Terminal) Restore() {
	if t.oldState != nil {
		_ = term.Restore(t.fd, t.oldState)
		t.oldState = nil
		fmt.Fprint(t.out, "\x1b[?25h\r\n")
	}
}

// Attach connects the terminal to the bound controls. onQuit runs on the
// delivery goroutine when the player quits.
func (t *Terminal) Attach(c *engine.Controls, onQuit func()) {
	t.controls = c
	t.onQuit = onQuit
}

// ReadKeys reads keys until the input ends or ctx is done, posting each one
// to sched. It blocks; run it on its own goroutine.
func (t *Terminal) ReadKeys(ctx context.Context, sched engine.Scheduler) error {
	return readKeys(t.in, func(k Key) {
		if ctx.Err() != nil {
			return
		}
		sched.Post(func() { t.Handle(k) })
	})
}

// Handle applies one key. Must run on the delivery goroutine.
func (t *Terminal) Handle(k Key) {
	a := Interpret(k, t.text)
	switch {
	case a.Quit:
		if t.onQuit != nil {
			t.onQuit()
		}
	case a.Control != "":
		if err := t.controls.Press(a.Control); err != nil {
			slog.Warn("key ignored", "control", a.Control, "error", err)
		}
	case a.TextChanged:
		t.text = a.Text
		t.controls.Type(t.text)
		t.render()
	}
}

// Controls implements engine.Surface.
func (t *Terminal) Controls() []string {
	return engine.RequiredControls
}

// ClearText implements engine.Surface. The engine sees no text change.
func (t *Terminal) ClearText() {
	t.text = ""
	t.render()
}

// ShowState implements engine.Display.
func (t *Terminal) ShowState(s game.State) {
	t.count = s.Count
	t.render()
}

// ShowOutcome implements engine.Display.
func (t *Terminal) ShowOutcome(o engine.Outcome) {
	if o.Kind == engine.OutcomeGameOver {
		t.score = 0
		t.status = o.String() + " - press r to play again"
	} else {
		t.score = o.Score
		t.status = ""
	}
	t.render()
}

// ShowError implements engine.Display.
func (t *Terminal) ShowError(err error) {
	t.failure = err.Error()
	t.render()
}

// render repaints the whole screen.
func (t *Terminal) render() {
	t.mu.Lock()
	defer t.mu.Unlock()

	lines := []string{
		"tickguess  [s]tart [h]alf [q]uarter  [x] stop  [r]eset  esc quits",
		"",
		fmt.Sprintf("  count: %d", t.count),
		fmt.Sprintf("  guess: %s_", t.text),
		fmt.Sprintf("  score: %d", t.score),
		"",
		"  " + t.status,
	}
	if t.failure != "" {
		lines = append(lines, "", "  error: "+t.failure)
	}

	// Raw mode needs explicit carriage returns.
	fmt.Fprint(t.out, "\x1b[H\x1b[2J"+strings.Join(lines, "\r\n")+"\r\n")
}
