package export

import (
	"errors"
	"image"
	"image/color/palette"
	"image/gif"
	"io"
	"os"
	"sync"

	"golang.org/x/image/draw"
)

var ErrNoFrames = errors.New("export: no frames recorded")

// GIFRecorder collects frames, scaled up by an integer factor, for a GIF
// animation. It is safe for concurrent use.
type GIFRecorder struct {
	mu     sync.Mutex
	scale  int
	delay  int
	max    int
	frames []*image.Paletted
}

// NewGIFRecorder keeps at most max frames (0 means unlimited) with delay in
// hundredths of a second between them.
func NewGIFRecorder(scale, delay, max int) *GIFRecorder {
	if scale < 1 {
		scale = 1
	}
	return &GIFRecorder{scale: scale, delay: delay, max: max}
}

func (r *GIFRecorder) Add(img *image.RGBA) {
	b := img.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, b.Dx()*r.scale, b.Dy()*r.scale), palette.Plan9)
	draw.NearestNeighbor.Scale(dst, dst.Rect, img, b, draw.Src, nil)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.max > 0 && len(r.frames) >= r.max {
		r.frames = append(r.frames[:0], r.frames[1:]...)
	}
	r.frames = append(r.frames, dst)
}

func (r *GIFRecorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

func (r *GIFRecorder) Encode(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.delay)
	}
	return gif.EncodeAll(w, &anim)
}

func (r *GIFRecorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
