package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/matrixdemo/internal/boot"
	"github.com/san-kum/matrixdemo/internal/input"
	"github.com/san-kum/matrixdemo/internal/sched"
)

const DefaultHold = 120 * time.Millisecond

type Options struct {
	Title         string
	Width         int
	Height        int
	FrameInterval time.Duration
	// Hold is how long a key press keeps a button pin low.
	Hold time.Duration
	Logs *LogTail
}

// App runs a terminal program standing in for the matrix panel and its two
// buttons.
type App struct {
	Sink     *Sink
	Forward  *input.HoldPin
	Backward *input.HoldPin

	opts    Options
	program *tea.Program
	cancel  context.CancelFunc
}

func NewApp(opts Options, cancel context.CancelFunc) *App {
	if opts.Hold <= 0 {
		opts.Hold = DefaultHold
	}
	clock := sched.Real{}
	a := &App{
		Sink:     NewSink(opts.Width, opts.Height, opts.FrameInterval, clock),
		Forward:  input.NewHoldPin(clock, opts.Hold),
		Backward: input.NewHoldPin(clock, opts.Hold),
		opts:     opts,
		cancel:   cancel,
	}
	m := NewModel(opts.Title, a.Sink, a.Forward, a.Backward, opts.Logs, cancel)
	a.program = tea.NewProgram(m, tea.WithAltScreen())
	a.Sink.Attach(a.program.Send)
	return a
}

// OnPhase forwards phase transitions to the view.
func (a *App) OnPhase(p boot.Phase) { a.program.Send(phaseMsg(p)) }

// OpenDisplay hands the sink to the controller.
func (a *App) OpenDisplay() (boot.Display, error) { return a.Sink, nil }

// Run starts fn in the background and shows the program until either the
// user quits or fn returns. It waits for fn before returning its error.
func (a *App) Run(ctx context.Context, fn func(context.Context) error) error {
	errc := make(chan error, 1)
	go func() {
		err := fn(ctx)
		errc <- err
		a.program.Send(doneMsg{err: err})
	}()

	_, err := a.program.Run()
	a.cancel()
	runErr := <-errc
	if err != nil {
		return err
	}
	return runErr
}
