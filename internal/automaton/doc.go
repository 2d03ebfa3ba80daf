// Package automaton provides the cellular-automaton engine behind the
// animation pages.
//
//   - [Grid]: fixed-size toroidal array of small cell values
//   - [Rule]: pure next-value function over a cell's Moore neighborhood
//   - [World]: a current/next pair of grids stepped one generation at a time
//
// Two rules are built in: [GameOfLife] and [Chaser]. Rules are looked up by
// name with [RuleByName].
//
// # Topology
//
// Every coordinate wraps modulo the grid dimensions, so there are no edges:
//
//	g := automaton.NewGrid(64, 32)
//	g.Set(-1, 0, 1) // same cell as (63, 0)
//
// # Thread Safety
//
// Grids and worlds are NOT thread-safe. They are owned by the single control
// loop that drives the display.
package automaton
