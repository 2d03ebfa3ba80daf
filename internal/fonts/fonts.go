// Package fonts resolves the font names used in page configuration to
// font.Face values.
//
// Two families are available: the fixed "7x13" bitmap face and Go Mono,
// rasterized at a requested pixel size with the "gomono:<size>" form.
package fonts

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
)

// Default is the face used when a page does not name one.
const Default = "7x13"

// Boot is the boot page face. It fits five status lines on a 32 pixel panel.
const Boot = "gomono:5"

var ErrUnknownFont = errors.New("fonts: unknown font")

var (
	monoOnce sync.Once
	monoFont *opentype.Font
	monoErr  error
)

func goMono() (*opentype.Font, error) {
	monoOnce.Do(func() {
		monoFont, monoErr = opentype.Parse(gomono.TTF)
	})
	return monoFont, monoErr
}

func Load(name string) (font.Face, error) {
	if name == "" {
		name = Default
	}
	family, size, _ := strings.Cut(name, ":")
	switch family {
	case "7x13", "terminal":
		return basicfont.Face7x13, nil
	case "gomono":
		px := 6.0
		if size != "" {
			v, err := strconv.ParseFloat(size, 64)
			if err != nil || v < 3 || v > 32 {
				return nil, fmt.Errorf("%w: bad size in %q", ErrUnknownFont, name)
			}
			px = v
		}
		f, err := goMono()
		if err != nil {
			return nil, fmt.Errorf("fonts: parse go mono: %w", err)
		}
		return opentype.NewFace(f, &opentype.FaceOptions{
			Size:    px,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFont, name)
}

// LineHeight is the vertical pitch of one text line in pixels.
func LineHeight(f font.Face) int {
	return f.Metrics().Height.Ceil()
}

// TextWidth is the rendered advance of s in pixels.
func TextWidth(f font.Face, s string) int {
	return font.MeasureString(f, s).Ceil()
}
