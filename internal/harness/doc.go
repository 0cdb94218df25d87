// Package harness runs scripted game sessions in virtual time.
//
// A scenario presses controls and types guesses at fixed offsets, lets
// virtual time run to a fixed duration, and checks assertions against what
// the display and the diagnostic trace saw.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: single_round
//	description: "One match at count 1 scores 1"
//	bound: 3              # optional, default from config
//	auto_reset: false     # optional
//	steps:
//	  - at: 0s
//	    press: start
//	  - at: 500ms
//	    type: "1"
//	duration: 4500ms
//	assertions:
//	  - type: round_scores
//	    scores: [1]
//	  - type: tick_count
//	    count: 4
//
// # Assertion Types
//
//   - round_scores: final score of every completed round, in order
//   - state_counts: every count the display was shown, in order
//   - tick_times: offsets of every timer tick
//   - tick_count: number of timer ticks
//   - clear_count: number of times the text field was cleared
//   - error_code: the error code that terminated the game
//
// # Deterministic Testing
//
// The harness uses:
//   - testutil.VirtualScheduler for time
//   - Sequential round ids ("round-1", "round-2", …)
//   - testutil.DeterministicClock for trace seqs
//   - In-memory SQLite trace (isolated per run)
//
// This ensures identical traces across runs for golden file comparison.
package harness
