package tui

import (
	"context"
	"fmt"
	"image"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/matrixdemo/internal/boot"
	"github.com/san-kum/matrixdemo/internal/input"
)

type phaseMsg boot.Phase

type doneMsg struct{ err error }

type Model struct {
	title    string
	sink     *Sink
	forward  *input.HoldPin
	backward *input.HoldPin
	logs     *LogTail
	cancel   context.CancelFunc
	cache    cellCache

	phase  boot.Phase
	frame  *image.RGBA
	page   string
	lines  []string
	frames int
	err    error
	done   bool
}

func NewModel(title string, sink *Sink, forward, backward *input.HoldPin, logs *LogTail, cancel context.CancelFunc) Model {
	return Model{
		title:    title,
		sink:     sink,
		forward:  forward,
		backward: backward,
		logs:     logs,
		cancel:   cancel,
		cache:    make(cellCache),
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.frame, m.page, m.lines = msg.img, msg.page, msg.lines
		m.frames++
		m.sink.Ack()
	case phaseMsg:
		m.phase = boot.Phase(msg)
	case doneMsg:
		m.err, m.done = msg.err, true
		return m, tea.Quit
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit
	case "right", "l", "d":
		m.forward.Press()
	case "left", "h", "a":
		m.backward.Press()
	}
	return m, nil
}

func (m Model) View() string {
	screen := matrixStyle.Render(renderFrame(m.frame, m.cache))
	if m.frame == nil {
		screen = matrixStyle.Render(subtle.Render("waiting for display..."))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, screen, " ", m.viewPanel())
}

func (m Model) viewPanel() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title) + "\n\n")

	status := statusBooting
	switch {
	case m.err != nil:
		status = statusFailed
	case m.phase == boot.RunDemo:
		status = statusRunning
	}
	b.WriteString(metricLabel.Render("phase  ") + status.Render(m.phase.String()) + "\n")
	b.WriteString(metricLabel.Render("page   ") + metricValue.Render(m.page) + "\n")
	b.WriteString(metricLabel.Render("frames ") + metricValue.Render(fmt.Sprint(m.frames)) + "\n")
	for i, l := range m.lines {
		b.WriteString(metricLabel.Render(fmt.Sprintf("line %d ", i)) + l + "\n")
	}
	if m.logs != nil {
		if lines := m.logs.Lines(); len(lines) > 0 {
			b.WriteString("\n")
			for _, l := range lines {
				b.WriteString(subtle.Render(l) + "\n")
			}
		}
	}
	b.WriteString("\n" + hints("←/a", "back", "→/d", "next", "q", "quit"))
	return panelStyle.Render(b.String())
}

// Err is the error the controller finished with, if any.
func (m Model) Err() error { return m.err }
