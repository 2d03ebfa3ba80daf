package boot_test

import (
	"context"
	"errors"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/matrixdemo/internal/automaton"
	"github.com/san-kum/matrixdemo/internal/boot"
	"github.com/san-kum/matrixdemo/internal/input"
	"github.com/san-kum/matrixdemo/internal/page"
	"github.com/san-kum/matrixdemo/internal/rtc"
	"github.com/san-kum/matrixdemo/internal/sched"
	"golang.org/x/image/font/basicfont"
)

var _ = Describe("Controller", func() {
	var (
		cfg      boot.Config
		deps     boot.Deps
		display  *fakeDisplay
		network  *fakeNetwork
		web      *fakeHTTP
		clock    *rtc.Clock
		manual   *sched.Manual
		env      map[string]string
		fwd      *input.LevelPin
		back     *input.LevelPin
		phases   []boot.Phase
		lifePage *page.AnimationPage
		ctx      context.Context
	)

	hostNow := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	BeforeEach(func() {
		ctx = context.Background()
		cfg = boot.DefaultConfig()
		display = &fakeDisplay{}
		network = &fakeNetwork{}
		web = &fakeHTTP{resp: &boot.Response{
			StatusCode: 200,
			Body:       []byte(`{"datetime":"2024-06-01T12:30:05.123456+02:00","timezone":"Europe/Paris"}`),
		}}
		clock = rtc.New(func() time.Time { return hostNow })
		manual = sched.NewManual(hostNow)
		env = map[string]string{
			"CIRCUITPY_WIFI_SSID":     "lab",
			"CIRCUITPY_WIFI_PASSWORD": "secret",
		}
		fwd, back = input.NewLevelPin(), input.NewLevelPin()
		phases = nil

		deps = boot.Deps{
			OpenDisplay: func() (boot.Display, error) { return display, nil },
			Network:     network,
			HTTP:        web,
			Clock:       clock,
			Screens: func(w, h int) ([]page.Page, error) {
				demo := page.NewText("demo", basicfont.Face7x13, w, h, page.Centered())
				rule := automaton.GameOfLife{}
				world := automaton.NewWorld(w, h, rule)
				if err := automaton.Seed(world.Current(), rule, "glider", 0, nil); err != nil {
					return nil, err
				}
				lifePage = page.NewAnimation("life", world, rule.Palette(color.RGBA{G: 0xff}))
				return []page.Page{demo, lifePage}, nil
			},
			Forward:   fwd,
			Backward:  back,
			BootFont:  basicfont.Face7x13,
			Getenv:    func(k string) string { return env[k] },
			Scheduler: manual,
			Logger:    log.New(io.Discard),
			OnPhase:   func(p boot.Phase) { phases = append(phases, p) },
		}
	})

	stepUntil := func(c *boot.Controller, want boot.Phase) {
		for i := 0; i < 20 && c.Phase() != want; i++ {
			Expect(c.Step(ctx)).To(Succeed())
		}
		Expect(c.Phase()).To(Equal(want))
	}

	Describe("boot sequence", func() {
		It("walks every phase in order into the demo loop", func() {
			c := boot.New(cfg, deps)
			stepUntil(c, boot.RunDemo)
			Expect(phases).To(Equal([]boot.Phase{
				boot.SetupScreens, boot.SetupBoard, boot.SetupWifi, boot.SyncClock, boot.RunDemo,
			}))

			Expect(c.Step(ctx)).To(Succeed())
			Expect(c.Phase()).To(Equal(boot.RunDemo))
		})

		It("shows the boot page first with progress lines", func() {
			c := boot.New(cfg, deps)
			stepUntil(c, boot.SetupBoard)
			Expect(c.Pages().ActiveName()).To(Equal(boot.BootPage))
			Expect(c.Pages().CycleNames()).To(Equal([]string{"demo", "life"}))
			Expect(c.Pages().Names()[0]).To(Equal(boot.BootPage))

			stepUntil(c, boot.SetupWifi)
			Expect(display.shown[0]).To(Equal(boot.BootPage))
			Expect(display.sawLine(0, "IHLRGB v0.0.2")).To(BeTrue())
			Expect(display.sawLine(1, "FW 1.7.7")).To(BeTrue())
		})

		It("writes the MAC and IP on the boot page", func() {
			cfg.Height = 64
			c := boot.New(cfg, deps)
			stepUntil(c, boot.SyncClock)
			Expect(display.sawLine(2, "MAC 02-00-00-aa-bb-cc")).To(BeTrue())
			Expect(display.sawLine(3, "Connecting...")).To(BeTrue())
			Expect(display.sawLine(3, "IP 10.0.0.5")).To(BeTrue())
		})

		It("fits every status line on a 32 pixel panel with the default boot font", func() {
			deps.BootFont = nil
			Expect(cfg.Height).To(Equal(32))
			c := boot.New(cfg, deps)
			stepUntil(c, boot.SyncClock)
			Expect(display.sawLine(2, "MAC 02-00-00-aa-bb-cc")).To(BeTrue())
			Expect(display.sawLine(3, "IP 10.0.0.5")).To(BeTrue())
		})
	})

	Describe("network association", func() {
		It("retries transient failures until connected", func() {
			cfg.Height = 64
			network.failures = 3
			c := boot.New(cfg, deps)
			stepUntil(c, boot.SyncClock)
			Expect(network.calls).To(Equal(4))
			Expect(display.sawLine(3, "Retrying...")).To(BeTrue())
		})

		It("fails fatally without credentials", func() {
			delete(env, "CIRCUITPY_WIFI_PASSWORD")
			c := boot.New(cfg, deps)
			err := c.Run(ctx)

			Expect(err).To(MatchError(boot.ErrConfigMissing))
			var pe *boot.PhaseError
			Expect(errors.As(err, &pe)).To(BeTrue())
			Expect(pe.Phase).To(Equal(boot.SetupWifi))
			Expect(network.calls).To(BeZero())
		})

		It("falls back to configured credentials", func() {
			env = map[string]string{}
			cfg.SSID, cfg.Password = "lab", "secret"
			c := boot.New(cfg, deps)
			stepUntil(c, boot.RunDemo)
			Expect(network.connected).To(BeTrue())
		})

		It("treats non-transient errors as fatal", func() {
			network.fatalErr = errors.New("co-processor reset")
			c := boot.New(cfg, deps)
			err := c.Run(ctx)
			Expect(err).To(MatchError(ContainSubstring("co-processor reset")))
			Expect(network.calls).To(Equal(1))
		})

		It("stops retrying when the context ends", func() {
			network.failures = -1
			cctx, cancel := context.WithCancel(ctx)
			network.onConnect = func(n int) {
				if n == 5 {
					cancel()
				}
			}
			c := boot.New(cfg, deps)
			Expect(c.Run(cctx)).To(Succeed())
			Expect(c.Phase()).To(Equal(boot.Exit))
			Expect(network.calls).To(Equal(5))
		})
	})

	Describe("hardware init", func() {
		It("fails fatally when the display cannot be opened", func() {
			deps.OpenDisplay = func() (boot.Display, error) { return nil, errors.New("no matrix") }
			err := boot.New(cfg, deps).Run(ctx)
			Expect(err).To(MatchError(boot.ErrHardwareInit))
			var pe *boot.PhaseError
			Expect(errors.As(err, &pe)).To(BeTrue())
			Expect(pe.Phase).To(Equal(boot.ResetDisplay))
		})

		It("fails fatally when the co-processor is missing", func() {
			network.initErr = errors.New("spi timeout")
			err := boot.New(cfg, deps).Run(ctx)
			Expect(err).To(MatchError(boot.ErrHardwareInit))
			Expect(err.Error()).To(HavePrefix("setup-board"))
		})
	})

	Describe("clock sync", func() {
		It("sets the clock from the time service", func() {
			c := boot.New(cfg, deps)
			stepUntil(c, boot.RunDemo)
			Expect(web.urls).To(Equal([]string{"http://worldtimeapi.org/api/ip"}))
			now := clock.Now()
			Expect(now.Year()).To(Equal(2024))
			Expect(now.Hour()).To(Equal(12))
			Expect(now.Minute()).To(Equal(30))
		})

		DescribeTable("skips without retrying",
			func(resp *boot.Response, err error) {
				web.resp, web.err = resp, err
				c := boot.New(cfg, deps)
				stepUntil(c, boot.RunDemo)
				for i := 0; i < 5; i++ {
					Expect(c.Step(ctx)).To(Succeed())
				}
				Expect(web.calls).To(Equal(1))
				Expect(clock.Offset()).To(BeZero())
			},
			Entry("server error", &boot.Response{StatusCode: 503}, nil),
			Entry("bad payload", &boot.Response{StatusCode: 200, Body: []byte("not json")}, nil),
			Entry("missing field", &boot.Response{StatusCode: 200, Body: []byte(`{}`)}, nil),
			Entry("transport error", nil, errors.New("dial tcp: timeout")),
		)
	})

	Describe("demo loop", func() {
		var c *boot.Controller

		BeforeEach(func() {
			c = boot.New(cfg, deps)
			stepUntil(c, boot.RunDemo)
		})

		It("switches to the first demo page and shows the time", func() {
			Expect(c.Pages().ActiveName()).To(Equal("demo"))
			Expect(c.Step(ctx)).To(Succeed())
			Expect(display.shown).To(Equal([]string{boot.BootPage, "demo"}))
			Expect(display.lines[len(display.lines)-1]).To(Equal([]string{"6/1/2024", "12:30:05"}))
		})

		It("cycles pages once per press, in both directions with wraparound", func() {
			fwd.Press()
			Expect(c.Step(ctx)).To(Succeed())
			Expect(c.Pages().ActiveName()).To(Equal("life"))

			for i := 0; i < 10; i++ {
				Expect(c.Step(ctx)).To(Succeed())
			}
			Expect(c.Pages().ActiveName()).To(Equal("life"))

			fwd.Release()
			Expect(c.Step(ctx)).To(Succeed())
			fwd.Press()
			Expect(c.Step(ctx)).To(Succeed())
			Expect(c.Pages().ActiveName()).To(Equal("demo"))
			fwd.Release()

			back.Press()
			Expect(c.Step(ctx)).To(Succeed())
			Expect(c.Pages().ActiveName()).To(Equal("life"))
			back.Release()
		})

		It("advances the shown animation one generation per loop", func() {
			fwd.Press()
			Expect(c.Step(ctx)).To(Succeed())
			gen := lifePage.World().Generation()
			for i := 0; i < 4; i++ {
				Expect(c.Step(ctx)).To(Succeed())
			}
			Expect(lifePage.World().Generation()).To(Equal(gen + 4))
		})

		It("polls the display until the frame is taken", func() {
			display.notReady = 3
			_, before := manual.Slept()
			Expect(c.Step(ctx)).To(Succeed())
			_, after := manual.Slept()
			Expect(after - before).To(Equal(3))
			Expect(display.attempts - display.refreshes).To(BeNumerically(">=", 3))
		})

		It("exits when the context ends", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			Expect(c.Run(cctx)).To(Succeed())
			Expect(c.Phase()).To(Equal(boot.Exit))
		})
	})
})

var _ = Describe("Phase", func() {
	It("names every phase", func() {
		seen := map[string]bool{}
		for _, p := range boot.Phases {
			Expect(p.String()).NotTo(Equal("unknown"))
			seen[p.String()] = true
		}
		Expect(seen).To(HaveLen(len(boot.Phases)))
		Expect(boot.Phase(42).String()).To(Equal("unknown"))
	})
})
