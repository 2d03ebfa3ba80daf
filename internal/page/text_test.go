package page

import (
	"image"
	"image/color"
	"testing"

	"github.com/san-kum/matrixdemo/internal/fonts"
	"golang.org/x/image/font/basicfont"
)

func TestTextPageLineCount(t *testing.T) {
	tests := []struct {
		height int
		want   int
	}{
		{32, 2},
		{64, 4},
		{13, 1},
		{5, 1},
	}
	for _, tt := range tests {
		p := NewText("t", basicfont.Face7x13, 64, tt.height)
		if got := p.LineCount(); got != tt.want {
			t.Errorf("height %d: expected %d lines, got %d", tt.height, tt.want, got)
		}
	}
}

func TestTextPageOutOfRangeIgnored(t *testing.T) {
	p := NewText("t", basicfont.Face7x13, 64, 32)
	p.SetLineText(0, "first")
	p.SetLineText(1, "second")

	p.SetLineText(-1, "x")
	p.SetLineText(p.LineCount(), "x")
	p.SetLineText(100, "x")

	lines := p.Lines()
	if lines[0] != "first" || lines[1] != "second" {
		t.Errorf("existing text changed: %v", lines)
	}
}

func TestTextPageDefaultsAndClear(t *testing.T) {
	p := NewText("t", basicfont.Face7x13, 64, 32)
	if p.Lines()[1] != "Line 2" {
		t.Errorf("expected placeholder text, got %q", p.Lines()[1])
	}
	p.Clear()
	for i, l := range p.Lines() {
		if l != "" {
			t.Errorf("line %d not cleared: %q", i, l)
		}
	}
}

func TestTextPageCentering(t *testing.T) {
	p := NewText("t", basicfont.Face7x13, 64, 32, Centered())
	p.SetLineText(0, "12:34")
	want := 64/2 - fonts.TextWidth(basicfont.Face7x13, "12:34")/2
	if got := p.LineOffset(0); got != want {
		t.Errorf("expected offset %d, got %d", want, got)
	}

	p.SetLineText(0, "1")
	if got := p.LineOffset(0); got != 32-3 {
		t.Errorf("offset should follow text changes, got %d", got)
	}

	plain := NewText("p", basicfont.Face7x13, 64, 32)
	plain.SetLineText(0, "12:34")
	if plain.LineOffset(0) != 0 {
		t.Error("uncentered lines start at 0")
	}
}

func TestTextPageDraw(t *testing.T) {
	p := NewText("t", basicfont.Face7x13, 64, 32, WithColor(color.RGBA{R: 0xff, A: 0xff}))
	p.Clear()
	p.SetLineText(0, "HI")

	dst := image.NewRGBA(p.Renderable().Bounds())
	p.Renderable().Draw(dst)

	lit := 0
	for y := 0; y < 13; y++ {
		for x := 0; x < 14; x++ {
			if dst.RGBAAt(x, y).R != 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("expected text pixels in the first line")
	}
	for y := 13; y < 32; y++ {
		for x := 0; x < 64; x++ {
			if dst.RGBAAt(x, y).R != 0 {
				t.Fatalf("unexpected pixel at (%d,%d) on a blank line", x, y)
			}
		}
	}
}
