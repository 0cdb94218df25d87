package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/tickguess/internal/engine"
	"github.com/roach88/tickguess/internal/store"
	"github.com/roach88/tickguess/internal/terminal"
)

// PlayOptions holds flags for the play command.
type PlayOptions struct {
	*RootOptions
	TraceDB string

	// SessionIDs allows overriding the session id generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	SessionIDs engine.RoundIDGenerator
}

// PlaySummary is reported when a session ends.
type PlaySummary struct {
	Session      string `json:"session"`
	TraceDB      string `json:"trace_db,omitempty"`
	Observations int    `json:"observations"`
	Error        string `json:"error,omitempty"`
}

func (s PlaySummary) String() string {
	where := "in memory"
	if s.TraceDB != "" {
		where = s.TraceDB
	}
	return fmt.Sprintf("session %s: %d observations recorded (%s)", s.Session, s.Observations, where)
}

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	return newPlayCommand(&PlayOptions{RootOptions: rootOpts})
}

func newPlayCommand(opts *PlayOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		Long: `Play the guessing game in the terminal.

Keys:
  s          start (1x cadence)
  h          half (2x cadence)
  q          quarter (4x cadence)
  x          stop the timer
  r          reset the count
  0-9, +, -  edit the guess (Backspace deletes)
  Esc, ^C    quit

Every diagnostic checkpoint is written to the trace database, which the
trace command can list afterwards.

Example:
  tickguess play
  tickguess play --config game.cue --trace-db ./tickguess.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.TraceDB, "trace-db", "", "path to SQLite trace database (overrides trace_db in config)")

	return cmd
}

func runPlay(opts *PlayOptions, cmd *cobra.Command) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	if opts.TraceDB != "" {
		cfg.TraceDB = opts.TraceDB
	}

	st, err := store.Open(cfg.TraceDB)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open trace database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing trace database", "error", closeErr)
		}
	}()

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	ids := opts.SessionIDs
	if ids == nil {
		ids = engine.UUIDv7Generator{}
	}
	loop := engine.NewLoop()

	rec, err := store.NewRecorder(ctx, st, ids.Generate(), engine.NewClock(), loop.Now, cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to start trace session", err)
	}

	term := terminal.New(cmd.InOrStdin(), cmd.OutOrStdout())
	controls, err := engine.Bind(term)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to bind controls", err)
	}
	term.Attach(controls, cancel)

	eng := engine.New(loop, controls, term, cfg,
		engine.WithDiagnostics(engine.MultiDiagnostics{rec, engine.LogDiagnostics{}}),
	)

	if err := term.Raw(); err != nil {
		return WrapExitError(ExitCommandError, "failed to configure terminal", err)
	}
	defer term.Restore()

	loop.Post(func() {
		if err := eng.Start(term); err != nil {
			slog.Error("engine start failed", "error", err)
			cancel()
		}
	})

	go func() {
		err := term.ReadKeys(ctx, loop)
		if err != nil && !errors.Is(err, io.EOF) {
			slog.Warn("input closed", "error", err)
		}
		// Queued behind the keys already posted.
		loop.Post(cancel)
	}()

	slog.Info("session started", "session", rec.Session(), "trace_db", cfg.TraceDB)
	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return WrapExitError(ExitFailure, "event loop error", err)
	}
	// The loop has exited; nothing else delivers on the engine now.
	eng.Stop()
	term.Restore()

	observations, err := st.ReadObservations(context.Background(), rec.Session(), "")
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read trace", err)
	}
	summary := PlaySummary{
		Session:      rec.Session(),
		TraceDB:      cfg.TraceDB,
		Observations: len(observations),
	}
	if gameErr := eng.Err(); gameErr != nil {
		summary.Error = gameErr.Error()
	}

	formatter := newFormatter(opts.RootOptions, cmd)
	if err := formatter.SuccessWithSession(summary.Session, summary); err != nil {
		return err
	}
	if summary.Error != "" {
		return NewExitError(ExitFailure, "game terminated: "+summary.Error)
	}
	return nil
}
