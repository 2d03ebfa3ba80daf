package automaton

import "image/color"

// ChaserStates is the length of the Chaser color cycle.
const ChaserStates = 10

// Chaser is a cyclic rule: a cell advances to the next value in the cycle
// when the first neighbor, in Offsets order, already holds that value.
type Chaser struct{}

func (Chaser) Name() string { return "chaser" }
func (Chaser) States() int  { return ChaserStates }

func (Chaser) Next(n Neighborhood, self uint8) uint8 {
	inside := (self + 1) % ChaserStates
	for _, v := range n {
		if v == inside {
			return inside
		}
	}
	return self
}

// Palette scales base by (v+1)/ChaserStates for each value v, giving a banded
// gradient from dim to full brightness.
func (Chaser) Palette(base color.RGBA) Palette {
	p := make(Palette, ChaserStates)
	for v := range p {
		k := uint32(v + 1)
		p[v] = color.RGBA{
			R: uint8(uint32(base.R) * k / ChaserStates),
			G: uint8(uint32(base.G) * k / ChaserStates),
			B: uint8(uint32(base.B) * k / ChaserStates),
			A: 0xff,
		}
	}
	return p
}
