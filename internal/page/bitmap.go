package page

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/san-kum/matrixdemo/internal/automaton"
)

// Bitmap is a palette-indexed pixel buffer.
type Bitmap struct {
	img *image.Paletted
}

func NewBitmap(w, h int, palette automaton.Palette) *Bitmap {
	p := make(color.Palette, len(palette))
	for i, c := range palette {
		p[i] = c
	}
	return &Bitmap{img: image.NewPaletted(image.Rect(0, 0, w, h), p)}
}

func (b *Bitmap) Bounds() image.Rectangle { return b.img.Rect }

func (b *Bitmap) Index(x, y int) uint8 { return b.img.ColorIndexAt(x, y) }

func (b *Bitmap) Image() *image.Paletted { return b.img }

// CopyGrid writes every cell of g into the bitmap as a palette index.
func (b *Bitmap) CopyGrid(g *automaton.Grid) {
	w, h := g.Width(), g.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.img.SetColorIndex(x, y, g.Get(x, y))
		}
	}
}

func (b *Bitmap) Draw(dst draw.Image) {
	draw.Draw(dst, dst.Bounds(), b.img, b.img.Rect.Min, draw.Src)
}
