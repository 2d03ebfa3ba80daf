package sim

import "github.com/san-kum/matrixdemo/internal/automaton"

// Metric observes the world after every generation.
type Metric interface {
	Name() string
	Observe(g *automaton.Grid, changed int)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(generation int, g *automaton.Grid, changed int)
}

type Config struct {
	Rule        string
	Width       int
	Height      int
	Pattern     string
	Density     float64
	Generations int
	Seed        int64
}

// Result holds one run. Population has one more entry than Changed: it
// starts with the seeded grid.
type Result struct {
	Rule        string
	Seed        int64
	Generations int
	Population  []float64
	Changed     []float64
	Metrics     map[string]float64
	Final       *automaton.Grid
}
