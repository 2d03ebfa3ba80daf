package boot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/san-kum/matrixdemo/internal/fonts"
	"github.com/san-kum/matrixdemo/internal/input"
	"github.com/san-kum/matrixdemo/internal/page"
	"github.com/san-kum/matrixdemo/internal/sched"
)

// BootPage is the name of the splash page that shows boot progress. It is
// never part of the cycle list.
const BootPage = "boot"

// Boot page status lines.
const (
	lineBanner = iota
	lineFirmware
	lineMAC
	lineNetwork
)

// Controller is the boot and demo state machine. It owns every piece of
// mutable device state.
type Controller struct {
	cfg  Config
	deps Deps

	phase   Phase
	display Display
	pages   *page.Registry
	boot    *page.TextPage
	input   *input.Controller
	shown   string
	board   BoardInfo
}

func New(cfg Config, deps Deps) *Controller {
	deps.setDefaults()
	return &Controller{
		cfg:   cfg,
		deps:  deps,
		phase: ResetDisplay,
		pages: page.NewRegistry(),
	}
}

func (c *Controller) Phase() Phase             { return c.phase }
func (c *Controller) Pages() *page.Registry    { return c.pages }
func (c *Controller) Input() *input.Controller { return c.input }
func (c *Controller) Board() BoardInfo         { return c.board }

// Run drives the state machine until ctx ends or a phase fails fatally. The
// context ending is the only way to reach Exit and is not an error.
func (c *Controller) Run(ctx context.Context) error {
	for c.phase != Exit {
		if err := c.Step(ctx); err != nil {
			return err
		}
	}
	c.deps.Logger.Info("exit")
	return nil
}

// Step runs one loop iteration: poll inputs, run the current phase, refresh
// the display.
func (c *Controller) Step(ctx context.Context) error {
	if ctx.Err() != nil {
		c.transition(Exit)
		return nil
	}

	c.detectInputs()

	next, err := c.runPhase(ctx, c.phase)
	if err != nil {
		if ctx.Err() != nil {
			c.transition(Exit)
			return nil
		}
		c.deps.Logger.Error("fatal", "phase", c.phase, "err", err)
		return &PhaseError{Phase: c.phase, Wrapped: err}
	}
	c.transition(next)

	if err := c.refresh(ctx); err != nil {
		c.transition(Exit)
	}
	return nil
}

func (c *Controller) transition(next Phase) {
	if next == c.phase {
		return
	}
	c.deps.Logger.Debug("phase", "from", c.phase, "to", next)
	c.phase = next
	if c.deps.OnPhase != nil {
		c.deps.OnPhase(next)
	}
}

func (c *Controller) runPhase(ctx context.Context, p Phase) (Phase, error) {
	switch p {
	case ResetDisplay:
		return c.resetDisplay()
	case SetupScreens:
		return c.setupScreens()
	case SetupBoard:
		return c.setupBoard(ctx)
	case SetupWifi:
		return c.setupWifi(ctx)
	case SyncClock:
		return c.syncClock(ctx)
	case RunDemo:
		return c.runDemoTick(ctx)
	case Exit:
		return Exit, nil
	}
	return Exit, fmt.Errorf("%w: %d", ErrUnknownPhase, int(p))
}

func (c *Controller) detectInputs() {
	if c.input != nil {
		c.input.Poll()
	}
}

func (c *Controller) resetDisplay() (Phase, error) {
	if closer, ok := c.display.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			c.deps.Logger.Warn("release display", "err", err)
		}
	}
	c.display = nil
	c.shown = ""

	d, err := c.deps.OpenDisplay()
	if err != nil {
		return ResetDisplay, fmt.Errorf("%w: display: %v", ErrHardwareInit, err)
	}
	c.display = d
	return SetupScreens, nil
}

func (c *Controller) setupScreens() (Phase, error) {
	face := c.deps.BootFont
	if face == nil {
		f, err := fonts.Load(fonts.Boot)
		if err != nil {
			return SetupScreens, err
		}
		face = f
	}
	c.boot = page.NewText(BootPage, face, c.cfg.Width, c.cfg.Height)
	if err := c.pages.Register(c.boot, false); err != nil {
		return SetupScreens, err
	}
	c.boot.Clear()
	c.boot.SetLineText(lineBanner, "IHLRGB "+c.cfg.Version)
	if err := c.pages.SetActive(BootPage); err != nil {
		return SetupScreens, err
	}

	if c.deps.Screens != nil {
		screens, err := c.deps.Screens(c.cfg.Width, c.cfg.Height)
		if err != nil {
			return SetupScreens, err
		}
		for _, p := range screens {
			if err := c.pages.Register(p, true); err != nil {
				return SetupScreens, err
			}
		}
	}
	c.deps.Logger.Info("screens ready", "pages", c.pages.Names())
	return SetupBoard, nil
}

func (c *Controller) setupBoard(ctx context.Context) (Phase, error) {
	c.deps.Logger.Info("booting", "version", c.cfg.Version)

	info, err := c.deps.Network.Init()
	if err != nil {
		return SetupBoard, fmt.Errorf("%w: network co-processor: %v", ErrHardwareInit, err)
	}
	c.board = info

	fwd, back := c.deps.Forward, c.deps.Backward
	if fwd == nil {
		fwd = input.NewLevelPin()
	}
	if back == nil {
		back = input.NewLevelPin()
	}
	c.input = input.NewController(fwd, back, input.Config{Settle: c.cfg.Settle}, c.deps.Scheduler)

	c.deps.Logger.Info("board found", "firmware", info.Firmware, "mac", PrettyMAC(info.MAC))
	if err := c.status(ctx, lineFirmware, "FW "+info.Firmware); err != nil {
		return SetupBoard, err
	}
	if err := c.status(ctx, lineMAC, "MAC "+PrettyMAC(info.MAC)); err != nil {
		return SetupBoard, err
	}
	return SetupWifi, nil
}

func (c *Controller) credentials() (string, string, error) {
	ssid := c.deps.Getenv(c.cfg.SSIDEnv)
	if ssid == "" {
		ssid = c.cfg.SSID
	}
	password := c.deps.Getenv(c.cfg.PasswordEnv)
	if password == "" {
		password = c.cfg.Password
	}
	if ssid == "" {
		return "", "", fmt.Errorf("%w: %s not set", ErrConfigMissing, c.cfg.SSIDEnv)
	}
	if password == "" {
		return "", "", fmt.Errorf("%w: %s not set", ErrConfigMissing, c.cfg.PasswordEnv)
	}
	return ssid, password, nil
}

// setupWifi associates with the access point, retrying transient failures
// until it succeeds.
func (c *Controller) setupWifi(ctx context.Context) (Phase, error) {
	ssid, password, err := c.credentials()
	if err != nil {
		return SetupWifi, err
	}

	c.deps.Logger.Info("connecting", "ssid", ssid)
	if err := c.status(ctx, lineNetwork, "Connecting..."); err != nil {
		return SetupWifi, err
	}

	attempts := 0
	for !c.deps.Network.IsConnected() {
		if err := ctx.Err(); err != nil {
			return SetupWifi, err
		}
		attempts++
		err := c.deps.Network.Connect(ssid, password)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrTransient) {
			return SetupWifi, err
		}
		c.deps.Logger.Warn("could not connect, retrying", "attempt", attempts, "err", err)
		if err := c.status(ctx, lineNetwork, "Retrying..."); err != nil {
			return SetupWifi, err
		}
	}

	st := c.deps.Network.Status()
	c.deps.Logger.Info("connected", "ssid", st.SSID, "rssi", st.RSSI, "ip", st.IP, "attempts", attempts)
	if err := c.status(ctx, lineNetwork, "IP "+st.IP.String()); err != nil {
		return SetupWifi, err
	}
	return SyncClock, nil
}

// syncClock makes one attempt to set the clock. Any failure is logged and
// the boot continues.
func (c *Controller) syncClock(ctx context.Context) (Phase, error) {
	if err := c.setClock(ctx); err != nil {
		if ctx.Err() != nil {
			return SyncClock, ctx.Err()
		}
		c.deps.Logger.Warn("clock sync skipped", "err", err)
	}
	c.enterDemo()
	return RunDemo, nil
}

func (c *Controller) setClock(ctx context.Context) error {
	resp, err := c.deps.HTTP.Get(ctx, c.cfg.TimeURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrClockSync, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrClockSync, resp.StatusCode)
	}
	t, err := ParseWorldTime(resp.Body)
	if err != nil {
		return err
	}
	c.deps.Clock.Set(t)
	c.deps.Logger.Info("clock set", "time", t)
	return nil
}

// enterDemo leaves the boot page for the first demo page.
func (c *Controller) enterDemo() {
	names := c.pages.CycleNames()
	if len(names) == 0 {
		return
	}
	if err := c.pages.SetActive(names[0]); err != nil {
		c.deps.Logger.Error("enter demo", "err", err)
	}
}

func (c *Controller) runDemoTick(ctx context.Context) (Phase, error) {
	for _, d := range c.input.Pending() {
		p := c.pages.Cycle(int(d))
		c.input.Ack(d)
		c.deps.Logger.Info("page", "direction", d, "name", p.Name())
	}

	now := c.deps.Clock.Now()
	if p := c.pages.Active(); p != nil {
		p.SetLineText(0, fmt.Sprintf("%d/%d/%d", int(now.Month()), now.Day(), now.Year()))
		p.SetLineText(1, now.Format("15:04:05"))
	}
	return RunDemo, nil
}

// status writes a boot page line and refreshes so progress shows during
// blocking phases.
func (c *Controller) status(ctx context.Context, line int, text string) error {
	c.boot.SetLineText(line, text)
	return c.refresh(ctx)
}

// refresh switches the display to the active page if it changed, advances
// that page one tick and waits for the display to take the frame.
func (c *Controller) refresh(ctx context.Context) error {
	if c.display == nil {
		return nil
	}
	p := c.pages.Active()
	if p == nil {
		return nil
	}
	if p.Name() != c.shown {
		c.display.SetActive(p.Renderable())
		if pd, ok := c.display.(PageDisplay); ok {
			pd.ShowPage(p)
		}
		c.shown = p.Name()
	}
	p.Tick()
	return sched.PollUntil(ctx, c.deps.Scheduler, c.cfg.RefreshPoll, c.display.Refresh)
}

// PrettyMAC formats a hardware address as lowercase hex pairs joined by '-'.
func PrettyMAC(mac []byte) string {
	parts := make([]string, len(mac))
	for i, b := range mac {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, "-")
}
