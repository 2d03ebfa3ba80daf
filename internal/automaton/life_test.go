package automaton

import "testing"

func TestGameOfLifeNext(t *testing.T) {
	tests := []struct {
		name  string
		alive int
		self  uint8
		want  uint8
	}{
		{"isolated dies", 0, 1, 0},
		{"one neighbor dies", 1, 1, 0},
		{"two neighbors survives", 2, 1, 1},
		{"two neighbors stays dead", 2, 0, 0},
		{"three neighbors survives", 3, 1, 1},
		{"three neighbors born", 3, 0, 1},
		{"four neighbors dies", 4, 1, 0},
		{"eight neighbors dies", 8, 1, 0},
	}

	rule := GameOfLife{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Neighborhood
			for i := 0; i < tt.alive; i++ {
				n[i] = 1
			}
			if got := rule.Next(n, tt.self); got != tt.want {
				t.Errorf("Next = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGameOfLifeSingleCellDies(t *testing.T) {
	w := NewWorld(64, 32, GameOfLife{})
	w.Current().Set(10, 10, 1)
	w.Step()
	if p := w.Current().Population(); p != 0 {
		t.Errorf("expected empty board, got population %d", p)
	}
}

func TestGameOfLifeBlockStable(t *testing.T) {
	w := NewWorld(64, 32, GameOfLife{})
	if err := Seed(w.Current(), GameOfLife{}, "block", 0, nil); err != nil {
		t.Fatal(err)
	}
	before := w.Current().Clone()
	for i := 0; i < 3; i++ {
		if changed := w.Step(); changed != 0 {
			t.Fatalf("generation %d: %d cells changed", i, changed)
		}
	}
	if !w.Current().Equal(before) {
		t.Error("block should be a still life")
	}
}

func TestGameOfLifeBlockAcrossCorner(t *testing.T) {
	w := NewWorld(8, 8, GameOfLife{})
	g := w.Current()
	g.Set(7, 7, 1)
	g.Set(0, 7, 1)
	g.Set(7, 0, 1)
	g.Set(0, 0, 1)
	before := g.Clone()
	w.Step()
	if !w.Current().Equal(before) {
		t.Error("block split across the corner should be stable on a torus")
	}
}

func TestGameOfLifeBlinkerWraps(t *testing.T) {
	w := NewWorld(6, 6, GameOfLife{})
	g := w.Current()
	g.Set(5, 2, 1)
	g.Set(0, 2, 1)
	g.Set(1, 2, 1)

	w.Step()
	vertical := [][2]int{{0, 1}, {0, 2}, {0, 3}}
	for _, p := range vertical {
		if w.Current().Get(p[0], p[1]) != 1 {
			t.Errorf("expected live cell at %v", p)
		}
	}
	if p := w.Current().Population(); p != 3 {
		t.Errorf("expected population 3, got %d", p)
	}

	w.Step()
	if w.Current().Get(5, 2) != 1 || w.Current().Get(1, 2) != 1 {
		t.Error("blinker should return to horizontal after two generations")
	}
}

func TestGameOfLifePalette(t *testing.T) {
	p := GameOfLife{}.Palette(rgba(0, 160, 0))
	if len(p) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(p))
	}
	if p[0].G != 0 || p[1].G != 160 {
		t.Errorf("unexpected palette %v", p)
	}
}
