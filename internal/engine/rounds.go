package engine

import "github.com/google/uuid"

// RoundIDGenerator names scoring rounds. Every round gets a fresh id when
// it starts, so diagnostics and outcomes can be correlated per round.
// Implemented by UUIDv7Generator (production) and
// testutil.SequenceGenerator (tests).
type RoundIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 round ids.
//
// Thread-safety: stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
