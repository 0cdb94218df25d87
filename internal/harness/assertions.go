package harness

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string      // Assertion type for categorization
	Expected string      // Human-readable expected outcome
	Actual   string      // Human-readable actual outcome
	Trace    []TraceLine // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, line := range e.Trace {
			fmt.Fprintf(&buf, "  %s\n", line)
		}
	}

	return buf.String()
}

// EvaluateAssertions checks every assertion and returns the failure
// messages, in assertion order.
func EvaluateAssertions(r *Result, assertions []Assertion) []string {
	var errs []string
	for _, a := range assertions {
		if err := evaluate(r, a); err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

func evaluate(r *Result, a Assertion) error {
	switch a.Type {
	case AssertRoundScores:
		return assertEqual(r, a.Type, a.Scores, r.Scores())
	case AssertStateCounts:
		return assertEqual(r, a.Type, a.Counts, r.States)
	case AssertTickTimes:
		return assertEqual(r, a.Type, a.Times, r.Ticks)
	case AssertTickCount:
		return assertEqual(r, a.Type, *a.Count, len(r.Ticks))
	case AssertClearCount:
		return assertEqual(r, a.Type, *a.Count, r.Clears)
	case AssertErrorCode:
		return assertEqual(r, a.Type, a.Code, r.ErrCode)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// assertEqual compares with nil and empty slices treated alike.
func assertEqual[T any](r *Result, kind string, expected, actual T) error {
	if reflect.DeepEqual(expected, actual) || (isEmpty(expected) && isEmpty(actual)) {
		return nil
	}
	return &AssertionError{
		Type:     kind,
		Expected: describe(expected),
		Actual:   describe(actual),
		Trace:    r.Trace,
	}
}

func isEmpty(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Slice && rv.Len() == 0
}

func describe(v any) string {
	switch v := v.(type) {
	case []time.Duration:
		parts := make([]string, len(v))
		for i, d := range v {
			parts[i] = d.String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	case string:
		if v == "" {
			return "(none)"
		}
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
