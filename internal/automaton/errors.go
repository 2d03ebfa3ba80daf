package automaton

import "errors"

var (
	// ErrDimensionMismatch indicates two grids of different sizes were combined.
	ErrDimensionMismatch = errors.New("automaton: grid dimension mismatch")

	// ErrUnknownRule indicates a rule name that is not registered.
	ErrUnknownRule = errors.New("automaton: unknown rule")

	// ErrUnknownPattern indicates a seed pattern name that is not registered.
	ErrUnknownPattern = errors.New("automaton: unknown seed pattern")
)
