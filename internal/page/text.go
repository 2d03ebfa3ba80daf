package page

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/san-kum/matrixdemo/internal/fonts"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// DefaultTextColor is the green used by text pages unless configured.
var DefaultTextColor = color.RGBA{G: 0xa0, A: 0xff}

type label struct {
	text string
	x, y int
}

// LabelSet is the render target of a text page: one label per line, drawn
// with a shared face and color.
type LabelSet struct {
	rect   image.Rectangle
	face   font.Face
	color  color.Color
	labels []label
}

func (l *LabelSet) Bounds() image.Rectangle { return l.rect }

func (l *LabelSet) Draw(dst draw.Image) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(l.color),
		Face: l.face,
	}
	for _, lb := range l.labels {
		if lb.text == "" {
			continue
		}
		d.Dot = fixed.P(lb.x, lb.y)
		d.DrawString(lb.text)
	}
}

type TextPage struct {
	name   string
	center bool
	labels *LabelSet
}

type TextOption func(*TextPage)

// Centered recomputes a line's horizontal offset from its rendered width
// every time its text changes.
func Centered() TextOption {
	return func(p *TextPage) { p.center = true }
}

func WithColor(c color.Color) TextOption {
	return func(p *TextPage) { p.labels.color = c }
}

// NewText builds a page with as many lines as fit in h at the face's line
// height, and at least one.
func NewText(name string, face font.Face, w, h int, opts ...TextOption) *TextPage {
	lh := fonts.LineHeight(face)
	n := 1
	if lh > 0 && h/lh > 1 {
		n = h / lh
	}
	ascent := face.Metrics().Ascent.Ceil()

	p := &TextPage{
		name: name,
		labels: &LabelSet{
			rect:   image.Rect(0, 0, w, h),
			face:   face,
			color:  DefaultTextColor,
			labels: make([]label, n),
		},
	}
	for i := range p.labels.labels {
		p.labels.labels[i].y = i*lh + ascent
	}
	for _, opt := range opts {
		opt(p)
	}
	for i := range p.labels.labels {
		p.SetLineText(i, fmt.Sprintf("Line %d", i+1))
	}
	return p
}

func (p *TextPage) Name() string           { return p.name }
func (p *TextPage) Renderable() Renderable { return p.labels }
func (p *TextPage) Tick()                  {}
func (p *TextPage) LineCount() int         { return len(p.labels.labels) }

func (p *TextPage) SetLineText(i int, text string) {
	if i < 0 || i >= len(p.labels.labels) {
		return
	}
	lb := &p.labels.labels[i]
	lb.text = text
	if p.center {
		w := p.labels.rect.Dx()
		lb.x = w/2 - fonts.TextWidth(p.labels.face, text)/2
	}
}

// Clear blanks every line.
func (p *TextPage) Clear() {
	for i := range p.labels.labels {
		p.SetLineText(i, "")
	}
}

func (p *TextPage) Lines() []string {
	out := make([]string, len(p.labels.labels))
	for i, lb := range p.labels.labels {
		out[i] = lb.text
	}
	return out
}

// LineOffset returns the horizontal pixel offset of line i.
func (p *TextPage) LineOffset(i int) int {
	if i < 0 || i >= len(p.labels.labels) {
		return 0
	}
	return p.labels.labels[i].x
}
