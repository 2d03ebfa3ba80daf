// Package display holds the pieces shared by the display sinks: an RGBA
// framebuffer the active page renders into and a frame pacer.
package display

import (
	"image"
	"image/color"
	"image/draw"
	"sync"
	"time"

	"github.com/san-kum/matrixdemo/internal/page"
	"github.com/san-kum/matrixdemo/internal/sched"
)

type Framebuffer struct {
	mu     sync.Mutex
	img    *image.RGBA
	active page.Renderable
}

func NewFramebuffer(w, h int) *Framebuffer {
	return &Framebuffer{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (f *Framebuffer) SetActive(r page.Renderable) {
	f.mu.Lock()
	f.active = r
	f.mu.Unlock()
}

func (f *Framebuffer) Bounds() image.Rectangle { return f.img.Rect }

// Render clears the buffer, draws the active renderable and returns a copy
// safe to hand to another goroutine.
func (f *Framebuffer) Render() *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()

	draw.Draw(f.img, f.img.Rect, image.NewUniform(color.Black), image.Point{}, draw.Src)
	if f.active != nil {
		f.active.Draw(f.img)
	}
	out := image.NewRGBA(f.img.Rect)
	copy(out.Pix, f.img.Pix)
	return out
}

// Pacer limits refreshes to one per interval.
type Pacer struct {
	interval time.Duration
	clock    sched.Scheduler
	last     time.Time
}

func NewPacer(interval time.Duration, clock sched.Scheduler) *Pacer {
	if clock == nil {
		clock = sched.Real{}
	}
	return &Pacer{interval: interval, clock: clock}
}

// Ready reports whether a frame may be pushed now and, if so, starts the
// next interval.
func (p *Pacer) Ready() bool {
	now := p.clock.Now()
	if !p.last.IsZero() && now.Sub(p.last) < p.interval {
		return false
	}
	p.last = now
	return true
}
