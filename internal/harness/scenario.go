package harness

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tickguess/internal/engine"
)

// Scenario is a scripted game session.
type Scenario struct {
	// Name uniquely identifies this scenario (and its golden file).
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Bound overrides the configured round bound.
	Bound *int `yaml:"bound,omitempty"`

	// AutoReset overrides the configured auto_reset flag.
	AutoReset *bool `yaml:"auto_reset,omitempty"`

	// Steps are applied in order; offsets must not decrease.
	Steps []Step `yaml:"steps"`

	// Duration is how far virtual time runs in total.
	Duration time.Duration `yaml:"duration"`

	// Assertions validate the run.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one occurrence at an offset from the session start. Exactly one
// of Press and Type is set.
type Step struct {
	At    time.Duration `yaml:"at"`
	Press string        `yaml:"press,omitempty"`

	// Type is the full text of the field after the change. An empty
	// string is a valid change.
	Type *string `yaml:"type,omitempty"`
}

// Assertion validates the run.
type Assertion struct {
	// Type selects the check, see the Assert* constants.
	Type string `yaml:"type"`

	Scores []int           `yaml:"scores,omitempty"`
	Counts []int           `yaml:"counts,omitempty"`
	Times  []time.Duration `yaml:"times,omitempty"`
	Count  *int            `yaml:"count,omitempty"`
	Code   string          `yaml:"code,omitempty"`
}

// Assertion type constants.
const (
	AssertRoundScores = "round_scores"
	AssertStateCounts = "state_counts"
	AssertTickTimes   = "tick_times"
	AssertTickCount   = "tick_count"
	AssertClearCount  = "clear_count"
	AssertErrorCode   = "error_code"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is invalid.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Duration <= 0 {
		return fmt.Errorf("duration must be positive")
	}

	if s.Bound != nil && *s.Bound < 0 {
		return fmt.Errorf("bound must be non-negative")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	buttons := map[string]bool{}
	for _, name := range engine.RequiredControls {
		if name != engine.ControlText {
			buttons[name] = true
		}
	}

	var last time.Duration
	for i, step := range s.Steps {
		if step.At < last {
			return fmt.Errorf("steps[%d]: at %v is before the previous step", i, step.At)
		}
		if step.At > s.Duration {
			return fmt.Errorf("steps[%d]: at %v is past the duration", i, step.At)
		}
		last = step.At

		switch {
		case step.Press != "" && step.Type != nil:
			return fmt.Errorf("steps[%d]: press and type are exclusive", i)
		case step.Press == "" && step.Type == nil:
			return fmt.Errorf("steps[%d]: one of press or type is required", i)
		case step.Press != "" && !buttons[step.Press]:
			return fmt.Errorf("steps[%d]: unknown control %q", i, step.Press)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertRoundScores:
		if a.Scores == nil {
			return fmt.Errorf("assertions[%d]: scores is required for round_scores", index)
		}
	case AssertStateCounts:
		if a.Counts == nil {
			return fmt.Errorf("assertions[%d]: counts is required for state_counts", index)
		}
	case AssertTickTimes:
		if a.Times == nil {
			return fmt.Errorf("assertions[%d]: times is required for tick_times", index)
		}
		if !sort.SliceIsSorted(a.Times, func(i, j int) bool { return a.Times[i] < a.Times[j] }) {
			return fmt.Errorf("assertions[%d]: times must be ascending", index)
		}
	case AssertTickCount, AssertClearCount:
		if a.Count == nil || *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: non-negative count is required for %s", index, a.Type)
		}
	case AssertErrorCode:
		if a.Code == "" {
			return fmt.Errorf("assertions[%d]: code is required for error_code", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
