package harness

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tickguess/internal/config"
	"github.com/roach88/tickguess/internal/engine"
)

func TestScenarios_AllPass(t *testing.T) {
	paths, err := DiscoverScenarios("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)

			result, err := Run(scenario, config.Default())
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestRunWithGolden(t *testing.T) {
	for _, name := range []string{"single_round", "reset_mid_round"} {
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario(filepath.Join("testdata/scenarios", name+".yaml"))
			require.NoError(t, err)

			_, err = RunWithGolden(t, scenario)
			require.NoError(t, err)
		})
	}
}

func TestRun_FailingAssertionReported(t *testing.T) {
	one := 1
	scenario := &Scenario{
		Name:        "wrong_expectations",
		Description: "expects a tick that never comes",
		Steps:       []Step{{At: 0, Press: engine.ControlStart}},
		Duration:    1500 * time.Millisecond,
		Assertions: []Assertion{
			{Type: AssertTickCount, Count: &one},
			{Type: AssertRoundScores, Scores: []int{3}},
		},
	}

	result, err := Run(scenario, config.Default())
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Assertion failed: round_scores")
	assert.Contains(t, result.Errors[0], "0ms press start")
}

func TestRun_ConfigCadencesApply(t *testing.T) {
	cfg := config.Default()
	cfg.Cadences.StartMS = 300

	scenario := &Scenario{
		Name:        "fast_start",
		Description: "custom cadence",
		Steps:       []Step{{At: 0, Press: engine.ControlStart}},
		Duration:    time.Second,
		Assertions:  []Assertion{{Type: AssertTickTimes, Times: []time.Duration{300 * time.Millisecond, 600 * time.Millisecond, 900 * time.Millisecond}}},
	}

	result, err := Run(scenario, cfg)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestFormatTrace(t *testing.T) {
	r := NewResult("x")
	r.Trace = []TraceLine{{At: 0, Event: "state count=0"}, {At: 1500 * time.Millisecond, Event: "clear"}}
	assert.Equal(t, "0ms state count=0\n1500ms clear\n", FormatTrace(r))
}
