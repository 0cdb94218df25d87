package engine

import "log/slog"

// Diagnostic checkpoint labels.
const (
	LabelTick   = "tick"
	LabelInput  = "input"
	LabelRecord = "record"
	LabelState  = "state"
	LabelScore  = "score"
)

// Diagnostics receives (label, value) pairs at fixed checkpoints. It is
// purely observational and runs on the delivery goroutine.
type Diagnostics interface {
	Observe(label string, value any)
}

// DiagnosticsFunc adapts a function to Diagnostics.
type DiagnosticsFunc func(label string, value any)

func (f DiagnosticsFunc) Observe(label string, value any) { f(label, value) }

// NopDiagnostics discards everything.
type NopDiagnostics struct{}

func (NopDiagnostics) Observe(string, any) {}

// LogDiagnostics writes each observation to a slog logger at debug level.
type LogDiagnostics struct {
	Logger *slog.Logger
}

func (d LogDiagnostics) Observe(label string, value any) {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("diagnostic", "label", label, "value", value)
}

// MultiDiagnostics fans each observation out in order.
type MultiDiagnostics []Diagnostics

func (m MultiDiagnostics) Observe(label string, value any) {
	for _, d := range m {
		d.Observe(label, value)
	}
}
