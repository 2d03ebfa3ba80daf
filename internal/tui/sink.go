package tui

import (
	"image"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/matrixdemo/internal/display"
	"github.com/san-kum/matrixdemo/internal/page"
	"github.com/san-kum/matrixdemo/internal/sched"
)

type frameMsg struct {
	img   *image.RGBA
	page  string
	lines []string
}

// Recorder receives every frame the sink pushes.
type Recorder interface {
	Add(img *image.RGBA)
}

// Sink is a boot.Display that renders into the terminal program. A frame is
// pending from the moment it is sent until the program has drawn it; Refresh
// reports false in the meantime, as a real panel does while it scans out.
type Sink struct {
	fb       *display.Framebuffer
	pacer    *display.Pacer
	recorder Recorder
	pending  atomic.Bool

	mu   sync.Mutex
	send func(tea.Msg)
	page page.Page
}

func NewSink(w, h int, interval time.Duration, clock sched.Scheduler) *Sink {
	return &Sink{
		fb:    display.NewFramebuffer(w, h),
		pacer: display.NewPacer(interval, clock),
	}
}

// Attach sets the function frames are delivered through, normally
// (*tea.Program).Send.
func (s *Sink) Attach(send func(tea.Msg)) {
	s.mu.Lock()
	s.send = send
	s.mu.Unlock()
}

func (s *Sink) Record(r Recorder) { s.recorder = r }

func (s *Sink) SetActive(r page.Renderable) { s.fb.SetActive(r) }

func (s *Sink) ShowPage(p page.Page) {
	s.mu.Lock()
	s.page = p
	s.mu.Unlock()
}

func (s *Sink) Refresh() bool {
	if s.pending.Load() || !s.pacer.Ready() {
		return false
	}

	msg := frameMsg{img: s.fb.Render()}
	s.mu.Lock()
	send, p := s.send, s.page
	s.mu.Unlock()
	if p != nil {
		msg.page = p.Name()
		if t, ok := p.(page.Texter); ok {
			msg.lines = t.Lines()
		}
	}
	if s.recorder != nil {
		s.recorder.Add(msg.img)
	}
	if send == nil {
		return true
	}
	s.pending.Store(true)
	send(msg)
	return true
}

// Ack marks the pending frame as drawn.
func (s *Sink) Ack() { s.pending.Store(false) }

func (s *Sink) Pending() bool { return s.pending.Load() }
