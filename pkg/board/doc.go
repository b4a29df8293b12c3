// Package board implements the skill board engine: four fixed lines of
// labeled boxes, filled by a randomized packing routine and periodically
// refreshed by animated swaps.
//
// # Model
//
// The engine owns a global pool of measured labels and partitions a subset
// of it across the lines. No label is ever displayed on more than one line
// at a time, and a line's rendered width (label widths plus gaps) never
// exceeds the shared width budget.
//
// Packing is intentionally a randomized, best-effort first fit rather than
// optimal bin packing: labels are drawn uniformly at random and accepted if
// they fit, and once a line is at least 80% full a single failed placement
// ends the fill. The product goal is visual variety with some breathing
// room, not maximal density.
//
// # Swaps
//
// On a fixed interval the engine proposes a swap: a random contiguous run
// of one to three labels on a random line is replaced by freshly packed
// labels drawn from the undisplayed remainder of the pool. The replacement
// animates through highlight, fade-out, swap, and fade-in phases, each
// scheduled as a one-shot timer from the previous phase's callback. A
// per-line lock guarantees at most one in-flight swap per line; swaps on
// different lines interleave freely, which produces the staggered motion
// the design wants.
//
// # Capabilities
//
// The engine renders nothing itself. It emits instructions through the
// [Renderer] interface, measures labels through [Measurer], and schedules
// callbacks through a timer.Scheduler. All three are injected, as is the
// random source, so every path, including "no valid move found", is
// reachable deterministically in tests.
package board
