package automaton

import (
	"fmt"
	"math/rand"
	"sort"
)

// patterns are point lists relative to the grid center.
var patterns = map[string][][2]int{
	"block":       {{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	"blinker":     {{-1, 0}, {0, 0}, {1, 0}},
	"glider":      {{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}},
	"r-pentomino": {{1, 0}, {2, 0}, {0, 1}, {1, 1}, {1, 2}},
	"acorn":       {{1, 0}, {3, 1}, {0, 2}, {1, 2}, {4, 2}, {5, 2}, {6, 2}},
}

// PatternNames lists the seeds accepted by Seed, including "random".
func PatternNames() []string {
	names := []string{"random"}
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names[1:])
	return names
}

// Seed clears g and fills it. "random" visits every cell with probability
// density and sets it to 1 for two-state rules, or to a uniformly chosen value
// otherwise. Named patterns place value 1 cells around the grid center.
func Seed(g *Grid, rule Rule, pattern string, density float64, rng *rand.Rand) error {
	g.Clear()
	if pattern == "" || pattern == "random" {
		states := rule.States()
		for i := range g.cells {
			if rng.Float64() >= density {
				continue
			}
			if states <= 2 {
				g.cells[i] = 1
			} else {
				g.cells[i] = uint8(rng.Intn(states))
			}
		}
		return nil
	}
	pts, ok := patterns[pattern]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPattern, pattern)
	}
	cx, cy := g.w/2, g.h/2
	for _, p := range pts {
		g.Set(cx+p[0], cy+p[1], 1)
	}
	return nil
}
