package automaton

import (
	"image/color"
	"math/rand"
	"testing"
)

// shiftRight copies the left neighbor. Any read of a value written in the
// same generation would smear a single cell across the whole row.
type shiftRight struct{}

func (shiftRight) Name() string                       { return "shift" }
func (shiftRight) States() int                        { return 2 }
func (shiftRight) Next(n Neighborhood, _ uint8) uint8 { return n[3] }
func (shiftRight) Palette(color.RGBA) Palette         { return nil }

func TestWorldNoAliasing(t *testing.T) {
	w := NewWorld(16, 4, shiftRight{})
	w.Current().Set(0, 1, 1)

	w.Step()
	if p := w.Current().Population(); p != 1 {
		t.Fatalf("expected one live cell, got %d", p)
	}
	if w.Current().Get(1, 1) != 1 {
		t.Error("cell should have moved exactly one step right")
	}
}

func TestWorldSwapReusesBuffers(t *testing.T) {
	w := NewWorld(8, 8, GameOfLife{})
	if err := Seed(w.Current(), GameOfLife{}, "glider", 0, nil); err != nil {
		t.Fatal(err)
	}
	cur, next := w.Current(), w.Next()

	w.Compute()
	computed := w.Next().Clone()
	w.Swap()

	if w.Current() != next || w.Next() != cur {
		t.Error("swap should exchange the existing buffers")
	}
	if !w.Current().Equal(computed) {
		t.Error("current should equal the previously computed next")
	}
	if w.Generation() != 1 {
		t.Errorf("expected generation 1, got %d", w.Generation())
	}
}

func TestWorldGliderTravels(t *testing.T) {
	w := NewWorld(10, 10, GameOfLife{})
	if err := Seed(w.Current(), GameOfLife{}, "glider", 0, nil); err != nil {
		t.Fatal(err)
	}
	start := w.Current().Clone()

	// a glider returns to its shape shifted by (1,1) every 4 generations, so
	// on a 10x10 torus it comes home after 40
	for i := 0; i < 40; i++ {
		w.Step()
	}
	if !w.Current().Equal(start) {
		t.Error("glider should wrap around the torus back to its start")
	}
}

func TestSeed(t *testing.T) {
	g := NewGrid(64, 32)
	rng := rand.New(rand.NewSource(3))

	if err := Seed(g, GameOfLife{}, "random", 0.5, rng); err != nil {
		t.Fatal(err)
	}
	p := g.Population()
	if p < 600 || p > 1450 {
		t.Errorf("population %d far from expected density", p)
	}
	for _, v := range g.Cells() {
		if v > 1 {
			t.Fatalf("life seed produced value %d", v)
		}
	}

	if err := Seed(g, GameOfLife{}, "r-pentomino", 0, rng); err != nil {
		t.Fatal(err)
	}
	if g.Population() != 5 {
		t.Errorf("expected 5 cells, got %d", g.Population())
	}

	if err := Seed(g, GameOfLife{}, "nonexistent", 0, rng); err == nil {
		t.Error("expected error for unknown pattern")
	}
}

func TestPatternNames(t *testing.T) {
	names := PatternNames()
	if names[0] != "random" {
		t.Errorf("expected random first, got %s", names[0])
	}
	if len(names) != len(patterns)+1 {
		t.Errorf("expected %d names, got %d", len(patterns)+1, len(names))
	}
}
