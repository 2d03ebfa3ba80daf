// Package page implements the selectable visual modes of the display.
//
// A [Page] is either an [AnimationPage], which steps a cellular automaton
// into a palette bitmap, or a [TextPage], which lays out a fixed number of
// text labels. Pages are created once and kept in a [Registry] for the life
// of the process; the registry also owns the ordered list of pages reachable
// with the cycle buttons.
package page

import (
	"errors"
	"image"
	"image/draw"
)

var (
	// ErrNotFound indicates a page name that was never registered.
	ErrNotFound = errors.New("page: not found")

	// ErrDuplicate indicates a page name registered twice.
	ErrDuplicate = errors.New("page: duplicate name")
)

// Renderable is a page's render target as seen by a display sink.
type Renderable interface {
	Bounds() image.Rectangle
	// Draw paints the target onto dst. dst is expected to be cleared.
	Draw(dst draw.Image)
}

// Page is the capability set shared by every page variant.
type Page interface {
	Name() string
	Renderable() Renderable
	// SetLineText replaces the text of line i. Pages without text lines, and
	// indexes outside the page's lines, ignore the call.
	SetLineText(i int, text string)
	// Tick advances the page by one frame and refreshes its render target.
	Tick()
}

// Texter is implemented by pages that expose their current text lines.
type Texter interface {
	Lines() []string
}
