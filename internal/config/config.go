// Package config loads the game configuration.
//
// Configuration files are CUE. They are unified with the embedded #Config
// schema, which supplies defaults, rejects unknown fields and constrains
// values (cadences must be positive, the round bound non-negative).
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"

	"github.com/roach88/tickguess/internal/game"
)

//go:embed schema.cue
var schemaCUE string

// Config is the resolved game configuration.
type Config struct {
	Cadences Cadences `json:"cadences"`

	// Bound is the highest count a round keeps running at. The state whose
	// count exceeds it completes the round.
	Bound int `json:"bound"`

	// AutoReset posts a reset occurrence whenever a round completes.
	AutoReset bool `json:"auto_reset"`

	// TraceDB is the SQLite path for the diagnostic trace. Empty keeps the
	// trace in memory for the session.
	TraceDB string `json:"trace_db"`
}

// Cadences holds the tick period of each start control, in milliseconds.
type Cadences struct {
	StartMS   int `json:"start_ms"`
	HalfMS    int `json:"half_ms"`
	QuarterMS int `json:"quarter_ms"`
}

// For returns the cadence selected by a start control.
func (c Cadences) For(s game.Speed) time.Duration {
	switch s {
	case game.SpeedHalf:
		return time.Duration(c.HalfMS) * time.Millisecond
	case game.SpeedQuarter:
		return time.Duration(c.QuarterMS) * time.Millisecond
	default:
		return time.Duration(c.StartMS) * time.Millisecond
	}
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Cadences: Cadences{
			StartMS:   1000,
			HalfMS:    500,
			QuarterMS: 250,
		},
		Bound:     3,
		AutoReset: false,
	}
}

// Load reads and validates a CUE configuration file. An empty path returns
// Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(path, data)
}

// Parse validates CUE source against the schema and decodes it. filename is
// used in error positions only.
func Parse(filename string, src []byte) (Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, fmt.Errorf("compile schema: %w", err)
	}

	user := ctx.CompileBytes(src, cue.Filename(filename))
	if err := user.Err(); err != nil {
		return Config{}, formatCUEError(err)
	}

	v := schema.LookupPath(cue.ParsePath("#Config")).Unify(user)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return Config{}, formatCUEError(err)
	}

	var cfg Config
	if err := v.Decode(&cfg); err != nil {
		return Config{}, formatCUEError(err)
	}
	return cfg, nil
}

// formatCUEError flattens a CUE error list into one error carrying every
// message with its position.
func formatCUEError(err error) error {
	msgs := errors.Errors(err)
	if len(msgs) == 0 {
		return fmt.Errorf("invalid config: %w", err)
	}
	return fmt.Errorf("invalid config: %s", errors.Details(err, nil))
}
