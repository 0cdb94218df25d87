package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrSessionNotFound is returned when a session id is unknown.
var ErrSessionNotFound = errors.New("session not found")

// ReadSessions returns every session, oldest first.
func (s *Store) ReadSessions(ctx context.Context) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, config
		FROM sessions
		ORDER BY started_at ASC, id ASC COLLATE BINARY
	`)
	if err != nil {
		return nil, fmt.Errorf("read sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("read sessions: %w", err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read sessions: %w", err)
	}
	return sessions, nil
}

// ReadSession returns one session or ErrSessionNotFound.
func (s *Store) ReadSession(ctx context.Context, id string) (Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, config FROM sessions WHERE id = ?
	`, id)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return Session{}, fmt.Errorf("read session: %w", err)
	}
	return sess, nil
}

// ReadObservations returns a session's observations in seq order. A
// non-empty label restricts the result to that label.
func (s *Store) ReadObservations(ctx context.Context, sessionID, label string) ([]Observation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, seq, elapsed_ms, label, value
		FROM observations
		WHERE session_id = ? AND (? = '' OR label = ?)
		ORDER BY seq ASC
	`, sessionID, label, label)
	if err != nil {
		return nil, fmt.Errorf("read observations: %w", err)
	}
	defer rows.Close()

	var out []Observation
	for rows.Next() {
		var (
			o         Observation
			elapsedMS int64
			value     string
		)
		if err := rows.Scan(&o.SessionID, &o.Seq, &elapsedMS, &o.Label, &value); err != nil {
			return nil, fmt.Errorf("read observations: %w", err)
		}
		o.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		o.Value = json.RawMessage(value)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read observations: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (Session, error) {
	var (
		sess      Session
		startedAt string
		config    string
	)
	if err := row.Scan(&sess.ID, &startedAt, &config); err != nil {
		return Session{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return Session{}, fmt.Errorf("parse started_at: %w", err)
	}
	sess.StartedAt = t
	sess.Config = json.RawMessage(config)
	return sess, nil
}
