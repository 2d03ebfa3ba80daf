package automaton

import "fmt"

// Offsets is the fixed Moore-neighborhood enumeration order. The Chaser rule
// takes the first matching neighbor, so this order is part of its behavior.
var Offsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Neighborhood holds the eight neighbor values of a cell in [Offsets] order.
type Neighborhood [8]uint8

// Sum returns the total of the neighbor values.
func (n Neighborhood) Sum() int {
	s := 0
	for _, v := range n {
		s += int(v)
	}
	return s
}

type Grid struct {
	w, h  int
	cells []uint8
}

func NewGrid(w, h int) *Grid {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("automaton: invalid grid size %dx%d", w, h))
	}
	return &Grid{w: w, h: h, cells: make([]uint8, w*h)}
}

func (g *Grid) Width() int  { return g.w }
func (g *Grid) Height() int { return g.h }

func (g *Grid) index(x, y int) int {
	x %= g.w
	if x < 0 {
		x += g.w
	}
	y %= g.h
	if y < 0 {
		y += g.h
	}
	return y*g.w + x
}

// Get returns the cell at (x mod W, y mod H).
func (g *Grid) Get(x, y int) uint8 { return g.cells[g.index(x, y)] }

// Set writes the cell at (x mod W, y mod H).
func (g *Grid) Set(x, y int, v uint8) { g.cells[g.index(x, y)] = v }

func (g *Grid) Neighborhood(x, y int) Neighborhood {
	var n Neighborhood
	for i, o := range Offsets {
		n[i] = g.Get(x+o[0], y+o[1])
	}
	return n
}

// Cells exposes the row-major backing slice.
func (g *Grid) Cells() []uint8 { return g.cells }

func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = 0
	}
}

// CopyFrom overwrites g with the contents of src. Both grids must have the
// same dimensions.
func (g *Grid) CopyFrom(src *Grid) error {
	if g.w != src.w || g.h != src.h {
		return ErrDimensionMismatch
	}
	copy(g.cells, src.cells)
	return nil
}

func (g *Grid) Clone() *Grid {
	c := NewGrid(g.w, g.h)
	copy(c.cells, g.cells)
	return c
}

func (g *Grid) Equal(o *Grid) bool {
	if o == nil || g.w != o.w || g.h != o.h {
		return false
	}
	for i, v := range g.cells {
		if o.cells[i] != v {
			return false
		}
	}
	return true
}

// Population counts the non-zero cells.
func (g *Grid) Population() int {
	n := 0
	for _, v := range g.cells {
		if v != 0 {
			n++
		}
	}
	return n
}
