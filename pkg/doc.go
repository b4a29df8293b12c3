// Package pkg provides the core libraries for the skillboard engine and its
// rendering pipeline.
//
// # Overview
//
// Skillboard packs a pool of variable-width skill labels into a fixed number
// of display lines and keeps the board alive by swapping labels in and out
// with timed animations. The packages under pkg implement that engine and
// everything around it; internal/cli wires them into the command-line tool.
//
// The typical data flow:
//
//	feed source (file or URL)
//	    |
//	    v
//	[feed]  parse and validate skill labels
//	    |
//	    v
//	[measure]  assign display-cell widths
//	    |
//	    v
//	[board]  randomized line packing + animated swaps
//	    |
//	    v
//	[render/layout]  positioned boxes per line
//	    |
//	    v
//	[render/sink]  SVG, JSON, or text artifacts
//
// The [pipeline] package runs the whole chain in one shot for exports; the
// TUI in internal/cli drives [board] directly and repaints from its state.
//
// # Packages
//
// [board] is the heart of the system: FillLine and FillLines implement the
// randomized first-fit packing with a fill-threshold stop, and Engine runs
// the swap lifecycle (highlight, fade-out, swap, fade-in) against injected
// Measurer, Renderer, and Scheduler implementations.
//
// [feed] loads label pools from JSON files or HTTP endpoints, with caching,
// retry, and change watching. [measure] converts label text to display
// widths. [timer] provides the scheduler abstraction plus a virtual-time
// implementation for tests.
//
// [render/layout] turns packed lines into positioned geometry and
// [render/sink] serializes that geometry. [pipeline] orchestrates load,
// pack, and render with artifact caching.
//
// [cache], [config], [prefs], [errors], [observability], and [buildinfo]
// are the supporting infrastructure: file-backed byte cache, TOML runtime
// configuration, persisted user preferences, coded errors, instrumentation
// hooks, and version stamping.
package pkg
