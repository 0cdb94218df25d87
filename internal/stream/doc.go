// Package stream implements the push-based stream primitives the game engine
// is composed from.
//
// A Stream is cold: every Subscribe runs its producer again with private
// state. Hot sources (Subject) and single-execution points (Broadcast, Share)
// are built on top of that.
//
// ARCHITECTURE:
//
// Single-Goroutine Delivery:
// Every Next/Error/Complete call, every Subscribe and every Unsubscribe happens
// on one goroutine, the one driving the Scheduler. Nothing in this package
// takes a lock. Work originating elsewhere (timers, terminal input) is handed
// to that goroutine by the scheduler implementation.
//
// Termination:
// After Error or Complete an observer receives nothing else, and the
// subscription's teardowns run in reverse registration order. Unsubscribe is
// idempotent. A teardown added to a closed subscription runs immediately.
//
// Ordering:
// Values are delivered in the order producers emit them. Subject delivers to
// a snapshot of its observers taken when the value arrives, in subscription
// order.
package stream
