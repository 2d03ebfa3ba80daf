package hw

import (
	"image"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/matrixdemo/internal/display"
	"github.com/san-kum/matrixdemo/internal/page"
	"github.com/san-kum/matrixdemo/internal/sched"
	"golang.org/x/image/draw"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
)

// Panel is the subset of *ssd1306.Dev the sink uses.
type Panel interface {
	Bounds() image.Rectangle
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
	Halt() error
}

// OLED is a boot.Display that scales frames onto a panel. A failed draw
// drops the frame; it is logged when it first happens, when the error
// changes and when drawing recovers.
type OLED struct {
	fb     *display.Framebuffer
	pacer  *display.Pacer
	dev    Panel
	bus    io.Closer
	scaled *image.RGBA
	logger *log.Logger
	err    error
}

// OpenOLED opens the I2C bus by name ("" for the first one) and an SSD1306
// at its default address.
func OpenOLED(busName string, w, h int, interval time.Duration, logger *log.Logger) (*OLED, error) {
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, err
	}
	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		bus.Close()
		return nil, err
	}
	return NewOLED(dev, bus, w, h, interval, nil, logger), nil
}

func NewOLED(dev Panel, bus i2c.BusCloser, w, h int, interval time.Duration, clock sched.Scheduler, logger *log.Logger) *OLED {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	o := &OLED{
		logger: logger,
		fb:     display.NewFramebuffer(w, h),
		pacer:  display.NewPacer(interval, clock),
		dev:    dev,
		scaled: image.NewRGBA(dev.Bounds()),
	}
	if bus != nil {
		o.bus = bus
	}
	return o
}

func (o *OLED) SetActive(r page.Renderable) { o.fb.SetActive(r) }

func (o *OLED) Refresh() bool {
	if !o.pacer.Ready() {
		return false
	}
	frame := o.fb.Render()
	draw.NearestNeighbor.Scale(o.scaled, o.scaled.Rect, frame, frame.Rect, draw.Src, nil)
	err := o.dev.Draw(o.dev.Bounds(), o.scaled, image.Point{})
	switch {
	case err != nil && (o.err == nil || err.Error() != o.err.Error()):
		o.logger.Warn("oled draw failed", "err", err)
	case err == nil && o.err != nil:
		o.logger.Info("oled draw recovered")
	}
	o.err = err
	return true
}

func (o *OLED) Close() error {
	err := o.dev.Halt()
	if o.bus != nil {
		if cerr := o.bus.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
