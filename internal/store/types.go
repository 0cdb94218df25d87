package store

import (
	"encoding/json"
	"time"
)

// Session is one engine run.
type Session struct {
	ID        string          `json:"id"`
	StartedAt time.Time       `json:"started_at"`
	Config    json.RawMessage `json:"config"`
}

// Observation is one diagnostic (label, value) pair.
type Observation struct {
	SessionID string          `json:"session_id"`
	Seq       int64           `json:"seq"`
	Elapsed   time.Duration   `json:"elapsed"`
	Label     string          `json:"label"`
	Value     json.RawMessage `json:"value"`
}
