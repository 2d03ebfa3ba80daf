package automation

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/matrixdemo/internal/boot"
	"github.com/san-kum/matrixdemo/internal/catalog"
	"github.com/san-kum/matrixdemo/internal/config"
	"github.com/san-kum/matrixdemo/internal/display"
	"github.com/san-kum/matrixdemo/internal/emulator"
	"github.com/san-kum/matrixdemo/internal/fonts"
	"github.com/san-kum/matrixdemo/internal/input"
	"github.com/san-kum/matrixdemo/internal/page"
	"github.com/san-kum/matrixdemo/internal/rtc"
	"github.com/san-kum/matrixdemo/internal/sched"
	"gopkg.in/yaml.v3"
)

var (
	ErrExpectation = errors.New("automation: expectation failed")
	ErrBootStalled = errors.New("automation: boot did not reach run-demo")
	ErrBadStep     = errors.New("automation: invalid step")
)

// maxBootSteps bounds the controller steps spent booting.
const maxBootSteps = 1000

// Scenario is a scripted session on an emulated board: it boots, then plays
// button presses and waits, checking which page is shown.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Preset      string `yaml:"preset"`
	Seed        int64  `yaml:"seed"`
	// Start is the wall clock time the emulated clock begins at (RFC 3339).
	Start           string `yaml:"start"`
	ConnectFailures int    `yaml:"connect_failures"`
	Steps           []Step `yaml:"steps"`
}

// Step does exactly one of: press a button, wait a number of frames, or
// expect a page to be active.
type Step struct {
	Press  string `yaml:"press,omitempty"`
	Wait   int    `yaml:"wait,omitempty"`
	Expect string `yaml:"expect,omitempty"`
}

type Report struct {
	Name   string
	Frames int
	// Pages is the active page after every step.
	Pages []string
	// Attempts is the number of association attempts during boot.
	Attempts int
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	return &scenario, nil
}

// headless is a display that renders every frame into an optional recorder.
type headless struct {
	fb     *display.Framebuffer
	frames int
	record func(*image.RGBA)
}

func (h *headless) SetActive(r page.Renderable) { h.fb.SetActive(r) }

func (h *headless) Refresh() bool {
	img := h.fb.Render()
	h.frames++
	if h.record != nil {
		h.record(img)
	}
	return true
}

type offline struct{}

func (offline) Get(context.Context, string) (*boot.Response, error) {
	return nil, errors.New("offline")
}

// RunScenario plays sc against cfg's display and pages. record, when set,
// receives every frame.
func RunScenario(ctx context.Context, sc *Scenario, cfg *config.Config, logger *log.Logger, record func(*image.RGBA)) (*Report, error) {
	if sc.ConnectFailures < 0 {
		return nil, fmt.Errorf("%w: connect_failures must not be negative", ErrBadStep)
	}
	pages := cfg.Pages
	if sc.Preset != "" {
		pages = config.GetPreset(sc.Preset)
		if pages == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", sc.Preset, config.ListPresets())
		}
	}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if sc.Start != "" {
		t, err := time.Parse(time.RFC3339, sc.Start)
		if err != nil {
			return nil, fmt.Errorf("start: %w", err)
		}
		start = t
	}

	bootFont, err := fonts.Load(cfg.BootFont)
	if err != nil {
		return nil, fmt.Errorf("boot font: %w", err)
	}

	clock := sched.NewManual(start)
	screen := &headless{fb: display.NewFramebuffer(cfg.Display.Width, cfg.Display.Height), record: record}
	opts := emulator.DefaultOpts
	opts.Failures = sc.ConnectFailures
	network := emulator.NewNetwork(&opts)
	forward, backward := input.NewLevelPin(), input.NewLevelPin()

	bc := cfg.Boot("scenario")
	bc.SSID, bc.Password = "scenario", "scenario"
	ctrl := boot.New(bc, boot.Deps{
		OpenDisplay: func() (boot.Display, error) { return screen, nil },
		Network:     network,
		HTTP:        offline{},
		Clock:       rtc.New(clock.Now),
		Screens:     catalog.NewRegistry(logger).Screens(pages, sc.Seed),
		Forward:     forward,
		Backward:    backward,
		Getenv:      func(string) string { return "" },
		BootFont:    bootFont,
		Scheduler:   clock,
		Logger:      logger,
	})

	for i := 0; ctrl.Phase() != boot.RunDemo; i++ {
		if i == maxBootSteps {
			return nil, fmt.Errorf("%w: stuck in %s", ErrBootStalled, ctrl.Phase())
		}
		if err := ctrl.Step(ctx); err != nil {
			return nil, err
		}
		if ctrl.Phase() == boot.Exit {
			return nil, ctx.Err()
		}
	}

	frame := func() error {
		clock.Advance(cfg.Display.FrameInterval)
		return ctrl.Step(ctx)
	}

	report := &Report{Name: sc.Name, Attempts: network.Attempts()}
	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		switch {
		case step.Press != "":
			pin := forward
			switch step.Press {
			case "forward":
			case "backward":
				pin = backward
			default:
				return report, fmt.Errorf("%w: step %d: unknown button %q", ErrBadStep, i+1, step.Press)
			}
			pin.Press()
			if err := frame(); err != nil {
				return report, err
			}
			pin.Release()
			if err := frame(); err != nil {
				return report, err
			}
		case step.Wait > 0:
			for n := 0; n < step.Wait; n++ {
				if err := frame(); err != nil {
					return report, err
				}
			}
		case step.Expect != "":
			if got := ctrl.Pages().ActiveName(); got != step.Expect {
				return report, fmt.Errorf("%w: step %d: expected page %q, got %q", ErrExpectation, i+1, step.Expect, got)
			}
		default:
			return report, fmt.Errorf("%w: step %d is empty", ErrBadStep, i+1)
		}
		report.Pages = append(report.Pages, ctrl.Pages().ActiveName())
	}
	report.Frames = screen.frames
	return report, nil
}
