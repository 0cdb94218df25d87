package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/tickguess/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	Session  string
	Label    string
}

// TraceEntry is one observation in trace output.
type TraceEntry struct {
	Seq       int64  `json:"seq"`
	ElapsedMS int64  `json:"elapsed_ms"`
	Label     string `json:"label"`
	Value     string `json:"value"`
}

// TraceResult is a session's recorded observations.
type TraceResult struct {
	Session   string       `json:"session"`
	StartedAt time.Time    `json:"started_at"`
	Config    string       `json:"config"`
	Entries   []TraceEntry `json:"entries"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "List recorded diagnostic traces",
		Long: `List the diagnostic traces recorded by play.

Without --session, lists every recorded session. With --session, lists
that session's observations in order: timer ticks, typed input, round
records, states and scores.

Examples:
  tickguess trace --db ./tickguess.db
  tickguess trace --db ./tickguess.db --session 0192...
  tickguess trace --db ./tickguess.db --session 0192... --label tick --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite trace database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Session, "session", "", "session id to list")
	cmd.Flags().StringVar(&opts.Label, "label", "", "filter to one label (tick, input, record, state, score)")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	// store.Open would create a missing file.
	if _, err := os.Stat(opts.Database); err != nil {
		return WrapExitError(ExitCommandError, "trace database not found", err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.Session == "" {
		sessions, err := st.ReadSessions(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read sessions", err)
		}
		if opts.Format == "json" {
			if sessions == nil {
				sessions = []store.Session{}
			}
			return formatter.Success(sessions)
		}
		w := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(w, "No sessions recorded.")
			return nil
		}
		for _, s := range sessions {
			fmt.Fprintf(w, "%s  %s  %s\n", s.ID, s.StartedAt.Format(time.RFC3339), s.Config)
		}
		return nil
	}

	sess, err := st.ReadSession(ctx, opts.Session)
	if errors.Is(err, store.ErrSessionNotFound) {
		return NewExitError(ExitCommandError, fmt.Sprintf("session not found: %s", opts.Session))
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read session", err)
	}

	observations, err := st.ReadObservations(ctx, sess.ID, opts.Label)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read observations", err)
	}

	result := TraceResult{
		Session:   sess.ID,
		StartedAt: sess.StartedAt,
		Config:    string(sess.Config),
		Entries:   make([]TraceEntry, 0, len(observations)),
	}
	for _, o := range observations {
		result.Entries = append(result.Entries, TraceEntry{
			Seq:       o.Seq,
			ElapsedMS: o.Elapsed.Milliseconds(),
			Label:     o.Label,
			Value:     string(o.Value),
		})
	}

	if opts.Format == "json" {
		return formatter.SuccessWithSession(result.Session, result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Session: %s\n", result.Session)
	fmt.Fprintf(w, "Started: %s\n", result.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Config:  %s\n\n", result.Config)
	if len(result.Entries) == 0 {
		fmt.Fprintln(w, "No observations.")
		return nil
	}
	for _, e := range result.Entries {
		fmt.Fprintf(w, "%4d  %7dms  %-6s  %s\n", e.Seq, e.ElapsedMS, e.Label, e.Value)
	}
	return nil
}
