package automaton

import "image/color"

// GameOfLife is Conway's rule: cells are 0 (dead) or 1 (alive).
type GameOfLife struct{}

func (GameOfLife) Name() string { return "life" }
func (GameOfLife) States() int  { return 2 }

func (GameOfLife) Next(n Neighborhood, self uint8) uint8 {
	switch n.Sum() {
	case 2:
		return self
	case 3:
		return 1
	default:
		return 0
	}
}

func (GameOfLife) Palette(base color.RGBA) Palette {
	base.A = 0xff
	return Palette{{A: 0xff}, base}
}
