package store

import (
	"context"
	"fmt"
	"time"
)

// WriteSession records the start of a session. config is stored as JSON.
// Uses ON CONFLICT(id) DO NOTHING for idempotency.
func (s *Store) WriteSession(ctx context.Context, id string, startedAt time.Time, config any) error {
	configJSON, err := marshalValue(config)
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, started_at, config)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		id,
		startedAt.UTC().Format(time.RFC3339Nano),
		configJSON,
	)
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// WriteObservation appends an observation. value is stored as JSON.
// Rewriting an existing (session, seq) pair is silently ignored.
//
// Note: The session must exist (foreign key constraint).
func (s *Store) WriteObservation(ctx context.Context, sessionID string, seq int64, elapsed time.Duration, label string, value any) error {
	valueJSON, err := marshalValue(value)
	if err != nil {
		return fmt.Errorf("write observation: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO observations (session_id, seq, elapsed_ms, label, value)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		sessionID,
		seq,
		elapsed.Milliseconds(),
		label,
		valueJSON,
	)
	if err != nil {
		return fmt.Errorf("write observation: %w", err)
	}
	return nil
}
