package tui

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const halfBlock = "▀"

// cellCache memoizes the styled half block for a top/bottom color pair.
type cellCache map[[2]color.RGBA]string

func (c cellCache) cell(top, bottom color.RGBA) string {
	key := [2]color.RGBA{top, bottom}
	if s, ok := c[key]; ok {
		return s
	}
	s := lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexColor(top))).
		Background(lipgloss.Color(hexColor(bottom))).
		Render(halfBlock)
	c[key] = s
	return s
}

// RenderFrame draws img with one terminal cell per two pixel rows: the upper
// pixel is the foreground of a half block, the lower one its background.
func RenderFrame(img *image.RGBA) string {
	return renderFrame(img, make(cellCache))
}

func renderFrame(img *image.RGBA, cache cellCache) string {
	if img == nil {
		return ""
	}
	b := img.Bounds()
	black := color.RGBA{A: 0xff}

	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			bottom := black
			if y+1 < b.Max.Y {
				bottom = img.RGBAAt(x, y+1)
			}
			sb.WriteString(cache.cell(img.RGBAAt(x, y), bottom))
		}
	}
	return sb.String()
}
