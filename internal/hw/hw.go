// Package hw drives real hardware through periph.io: an SSD1306 OLED panel
// standing in for the matrix and two GPIO push buttons.
package hw

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

var ErrNoPin = errors.New("hw: no such pin")

// Init loads the host drivers. It must run before any bus or pin is opened.
func Init() error {
	_, err := host.Init()
	return err
}

// Button is an input.Pin backed by a GPIO line wired to ground through the
// switch, with the internal pull-up enabled.
type Button struct {
	pin gpio.PinIn
}

func NewButton(p gpio.PinIn) (*Button, error) {
	if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name(), err)
	}
	return &Button{pin: p}, nil
}

// OpenButton looks the pin up by name, e.g. "GPIO17".
func OpenButton(name string) (*Button, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoPin, name)
	}
	return NewButton(p)
}

func (b *Button) Read() bool { return b.pin.Read() == gpio.High }
