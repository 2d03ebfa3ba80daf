package page

import (
	"fmt"

	"github.com/san-kum/matrixdemo/internal/automaton"
)

// Reseeder refills a grid when an animation page restarts.
type Reseeder func(g *automaton.Grid) error

type AnimationPage struct {
	name        string
	world       *automaton.World
	bitmap      *Bitmap
	reseed      Reseeder
	reseedEvery int
	onReseedErr func(error)
	lastChanged int
}

type AnimationOption func(*AnimationPage)

// ReseedEvery restarts the animation with fn every n generations.
func ReseedEvery(n int, fn Reseeder) AnimationOption {
	return func(p *AnimationPage) {
		p.reseedEvery = n
		p.reseed = fn
	}
}

// OnReseedError reports reseed failures to fn. The animation keeps running
// from the generation it reached.
func OnReseedError(fn func(error)) AnimationOption {
	return func(p *AnimationPage) { p.onReseedErr = fn }
}

// NewAnimation wraps world; the bitmap shows the world's current grid
// immediately.
func NewAnimation(name string, world *automaton.World, palette automaton.Palette, opts ...AnimationOption) *AnimationPage {
	w, h := world.Size()
	p := &AnimationPage{
		name:   name,
		world:  world,
		bitmap: NewBitmap(w, h, palette),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.bitmap.CopyGrid(world.Current())
	return p
}

func (p *AnimationPage) Name() string            { return p.name }
func (p *AnimationPage) Renderable() Renderable  { return p.bitmap }
func (p *AnimationPage) Bitmap() *Bitmap         { return p.bitmap }
func (p *AnimationPage) World() *automaton.World { return p.world }
func (p *AnimationPage) SetLineText(int, string) {}

// LastChanged is the number of cells that changed in the last tick.
func (p *AnimationPage) LastChanged() int { return p.lastChanged }

// Tick computes the next generation, copies it into the bitmap and then
// swaps the grids.
func (p *AnimationPage) Tick() {
	p.lastChanged = p.world.Compute()
	p.bitmap.CopyGrid(p.world.Next())
	p.world.Swap()

	if p.reseed == nil || p.reseedEvery <= 0 || p.world.Generation()%p.reseedEvery != 0 {
		return
	}
	g := p.world.Current().Clone()
	err := p.reseed(g)
	if err == nil {
		err = p.world.Load(g)
	}
	if err != nil {
		if p.onReseedErr != nil {
			p.onReseedErr(fmt.Errorf("reseed %s: %w", p.name, err))
		}
		return
	}
	p.bitmap.CopyGrid(p.world.Current())
}
