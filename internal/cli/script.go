package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tickguess/internal/harness"
)

// ScriptOptions holds flags for the script command.
type ScriptOptions struct {
	*RootOptions
	Trace bool
}

// ScriptResult contains the results of a script run.
type ScriptResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// ScenarioResult contains the result of a single scenario.
type ScenarioResult struct {
	Name   string   `json:"name"`
	File   string   `json:"file"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
	Scores []int    `json:"scores"`
	Ticks  int      `json:"ticks"`
	Trace  []string `json:"trace,omitempty"`
}

// NewScriptCommand creates the script command.
func NewScriptCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScriptOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "script <scenario.yaml|dir>...",
		Short: "Run scripted games in virtual time",
		Long: `Run YAML scenarios against the game in virtual time.

Each scenario presses controls and types guesses at fixed offsets, then
checks assertions on the resulting states, rounds and ticks. Directories
contribute every *.yaml and *.yml file they contain.

Exit codes:
  0  every assertion held
  1  at least one scenario failed
  2  a scenario could not be found, loaded or run

Examples:
  tickguess script ./scenarios
  tickguess script single_round.yaml --trace
  tickguess script ./scenarios --config fast.cue --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "print each scenario's trace")

	return cmd
}

func runScript(opts *ScriptOptions, paths []string, cmd *cobra.Command) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	files, err := harness.DiscoverScenarios(paths...)
	if err != nil {
		var notFound *harness.ScenarioNotFoundError
		if errors.As(err, &notFound) {
			return NewExitError(ExitCommandError, notFound.Error())
		}
		return WrapExitError(ExitCommandError, "failed to find scenarios", err)
	}

	formatter := newFormatter(opts.RootOptions, cmd)
	result := ScriptResult{
		Scenarios: make([]ScenarioResult, 0, len(files)),
		Total:     len(files),
	}

	for _, file := range files {
		formatter.VerboseLog("running %s", file)

		scenario, err := harness.LoadScenario(file)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load scenario", err)
		}
		run, err := harness.Run(scenario, cfg)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("scenario %s failed to run", scenario.Name), err)
		}

		sr := ScenarioResult{
			Name:   run.Scenario,
			File:   file,
			Pass:   run.Pass,
			Errors: run.Errors,
			Scores: run.Scores(),
			Ticks:  len(run.Ticks),
		}
		if opts.Trace || opts.Format == "json" {
			for _, line := range run.Trace {
				sr.Trace = append(sr.Trace, line.String())
			}
		}
		result.Scenarios = append(result.Scenarios, sr)

		if run.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		outputScriptText(cmd, result)
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenarios failed", result.Failed, result.Total))
	}
	return nil
}

func outputScriptText(cmd *cobra.Command, result ScriptResult) {
	w := cmd.OutOrStdout()

	if result.Total == 0 {
		fmt.Fprintln(w, "No scenarios found.")
		return
	}

	for _, s := range result.Scenarios {
		mark := "✓"
		if !s.Pass {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s %s (scores %v, %d ticks)\n", mark, s.Name, s.Scores, s.Ticks)
		for _, e := range s.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
		for _, line := range s.Trace {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}

	fmt.Fprintf(w, "\n%d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
}
