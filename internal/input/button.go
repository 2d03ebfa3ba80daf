// Package input turns two momentary, active-low buttons into single
// "cycle forward" and "cycle backward" events.
//
// Each [Button] is a small state machine:
//
//	Idle -> Candidate -> Confirmed -> (Ack) -> Idle
//
// A press is confirmed only if the pin still reads asserted after the
// settle delay. A confirmed button emits nothing further until the owner
// calls Ack, and after Ack it must be seen released before it can fire
// again, so holding a button never repeats.
package input

import (
	"time"

	"github.com/san-kum/matrixdemo/internal/sched"
)

// Pin is a raw digital input; true means the line is high. Buttons are
// active-low, so a pressed button reads false.
type Pin interface {
	Read() bool
}

type State int

const (
	Idle State = iota
	Candidate
	Confirmed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Candidate:
		return "candidate"
	case Confirmed:
		return "confirmed"
	}
	return "unknown"
}

// DefaultSettle is the debounce delay between the first and second read.
const DefaultSettle = 30 * time.Millisecond

type Button struct {
	pin    Pin
	settle time.Duration
	sched  sched.Scheduler
	state  State
	armed  bool
}

func NewButton(pin Pin, settle time.Duration, s sched.Scheduler) *Button {
	if settle <= 0 {
		settle = DefaultSettle
	}
	return &Button{pin: pin, settle: settle, sched: s, armed: true}
}

func (b *Button) State() State { return b.state }

// Pending reports a confirmed press that has not been acknowledged.
func (b *Button) Pending() bool { return b.state == Confirmed }

// Poll samples the pin and returns true only on the poll that confirms a
// new press. Confirming blocks for the settle delay.
func (b *Button) Poll() bool {
	if b.state == Confirmed {
		return false
	}
	if b.pin.Read() {
		b.armed = true
		return false
	}
	if !b.armed {
		return false
	}

	b.state = Candidate
	b.sched.Sleep(b.settle)
	if b.pin.Read() {
		b.state = Idle
		return false
	}
	b.state = Confirmed
	b.armed = false
	return true
}

// Ack consumes a confirmed press and returns the button to Idle. A button
// still held down must be released before it can fire again.
func (b *Button) Ack() {
	if b.state == Confirmed {
		b.state = Idle
	}
}
