package input

import (
	"sync"
	"time"

	"github.com/san-kum/matrixdemo/internal/sched"
)

// Config is the debounce configuration shared by both buttons.
type Config struct {
	Settle time.Duration
}

// LevelPin is a settable pin, idle high.
type LevelPin struct {
	mu   sync.Mutex
	high bool
}

func NewLevelPin() *LevelPin { return &LevelPin{high: true} }

func (p *LevelPin) Read() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.high
}

// Press pulls the line low; Release lets it float high again.
func (p *LevelPin) Press()   { p.set(false) }
func (p *LevelPin) Release() { p.set(true) }

func (p *LevelPin) set(high bool) {
	p.mu.Lock()
	p.high = high
	p.mu.Unlock()
}

// HoldPin reads low for a fixed hold time after each Press. It stands in for
// inputs that only report key-down, such as a terminal keyboard.
type HoldPin struct {
	mu    sync.Mutex
	clock sched.Scheduler
	hold  time.Duration
	until time.Time
}

func NewHoldPin(clock sched.Scheduler, hold time.Duration) *HoldPin {
	return &HoldPin{clock: clock, hold: hold}
}

func (p *HoldPin) Press() {
	p.mu.Lock()
	p.until = p.clock.Now().Add(p.hold)
	p.mu.Unlock()
}

func (p *HoldPin) Read() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.clock.Now().Before(p.until)
}
