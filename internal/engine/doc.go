// Package engine composes the countdown game out of stream primitives.
//
// The engine turns discrete occurrences (button presses, text changes) into
// one cancellable, restartable, scored timer process.
//
// ARCHITECTURE:
//
// Single-Writer Event Loop:
// Every occurrence, every timer tick and every downstream computation runs
// on one goroutine, the Loop's. This ensures:
// - Transitions and score increments are applied in arrival order
// - A tick is delivered to every consumer before the next occurrence
// - No locks inside the pipeline
//
// Pipeline:
// 1. Controls (Event Source Adapter) expose the six occurrence streams
// 2. SelectSpeed merges start/half/quarter into cadence values
// 3. Each cadence switches to a fresh CancellableInterval (old one released first)
// 4. Ticks become Increment transitions, resets become Reset transitions
// 5. FoldStates folds transitions over game.Initial, emitting the seed first
// 6. The state stream is published once (Broadcast) and observed by the
//    display, the diagnostics sink and the Scorer
// 7. The Scorer runs bounded rounds: join with the latest text, count
//    matches, report Game Over, start the next round
//
// CRITICAL PATTERNS:
//
// Single Execution:
// The state pipeline is connected exactly once per Engine. Subscribers come
// and go (the Scorer resubscribes every round) without restarting timers.
//
// Fail-Fast:
// A failing transition or join terminates the state broadcast for every
// subscriber. There is no per-tick recovery.
package engine
