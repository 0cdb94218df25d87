// Package store keeps the diagnostic trace of game sessions in SQLite.
//
// The trace is append-only:
//   - Sessions: one row per engine run, with the resolved configuration
//   - Observations: (label, value) pairs from the engine's checkpoints
//
// # Critical Patterns
//
// Logical ordering:
//   - Observations are ordered by seq (logical clock), never timestamps
//   - All queries include ORDER BY seq ASC
//
// Idempotent writes:
//   - (session_id, seq) is the primary key; rewriting a row is a no-op
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes (file databases)
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Observations must belong to a session
//
// The path ":memory:" keeps the trace for the life of the process only.
package store
