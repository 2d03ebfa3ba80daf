package automaton

import (
	"fmt"
	"image/color"
	"sort"
)

// Rule computes a cell's next value from its current value and neighborhood.
// Implementations must be pure: the same inputs always give the same output.
type Rule interface {
	Name() string
	// States is the number of distinct cell values, 0..States()-1.
	States() int
	Next(n Neighborhood, self uint8) uint8
	// Palette maps every cell value to a display color derived from base.
	Palette(base color.RGBA) Palette
}

// Palette is indexed by cell value.
type Palette []color.RGBA

// Color returns the entry for v, or black when v is outside the palette.
func (p Palette) Color(v uint8) color.RGBA {
	if int(v) >= len(p) {
		return color.RGBA{A: 0xff}
	}
	return p[v]
}

var rules = map[string]func() Rule{
	"life":   func() Rule { return GameOfLife{} },
	"chaser": func() Rule { return Chaser{} },
}

func RuleByName(name string) (Rule, error) {
	fn, ok := rules[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRule, name)
	}
	return fn(), nil
}

func RuleNames() []string {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
