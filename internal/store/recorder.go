package store

import (
	"context"
	"log/slog"
	"time"
)

// SeqSource issues logical sequence numbers. engine.Clock and
// testutil.DeterministicClock both satisfy it.
type SeqSource interface {
	Next() int64
}

// Recorder writes engine diagnostics into a session's trace.
//
// It satisfies engine.Diagnostics. A failed write is logged and kept in
// Err; it never reaches the engine.
type Recorder struct {
	ctx     context.Context
	store   *Store
	session string
	seq     SeqSource
	now     func() time.Time
	start   time.Time
	err     error
}

// NewRecorder starts a session and returns its recorder. now supplies the
// time used for elapsed offsets (the engine's scheduler clock).
func NewRecorder(ctx context.Context, s *Store, sessionID string, seq SeqSource, now func() time.Time, config any) (*Recorder, error) {
	start := now()
	if err := s.WriteSession(ctx, sessionID, start, config); err != nil {
		return nil, err
	}
	return &Recorder{
		ctx:     ctx,
		store:   s,
		session: sessionID,
		seq:     seq,
		now:     now,
		start:   start,
	}, nil
}

// Observe appends (label, value) to the trace.
func (r *Recorder) Observe(label string, value any) {
	seq := r.seq.Next()
	err := r.store.WriteObservation(r.ctx, r.session, seq, r.now().Sub(r.start), label, value)
	if err != nil {
		slog.Warn("diagnostic dropped", "session", r.session, "label", label, "seq", seq, "error", err)
		if r.err == nil {
			r.err = err
		}
	}
}

// Session returns the session id.
func (r *Recorder) Session() string {
	return r.session
}

// Err returns the first write failure, if any.
func (r *Recorder) Err() error {
	return r.err
}
