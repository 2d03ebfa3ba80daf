package boot

import (
	"context"
	"net"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/matrixdemo/internal/input"
	"github.com/san-kum/matrixdemo/internal/page"
	"github.com/san-kum/matrixdemo/internal/sched"
	"golang.org/x/image/font"
)

// Display is the physical display sink.
type Display interface {
	SetActive(r page.Renderable)
	// Refresh pushes a frame; false means the display was not ready and the
	// caller should try again.
	Refresh() bool
}

// PageDisplay is implemented by displays that want the whole page, not only
// its render target, whenever the shown page changes.
type PageDisplay interface {
	ShowPage(p page.Page)
}

// BoardInfo describes the network co-processor found during SetupBoard.
type BoardInfo struct {
	Firmware string
	MAC      net.HardwareAddr
}

// NetStatus is reported after a successful association.
type NetStatus struct {
	SSID string
	RSSI int
	IP   net.IP
}

// Network is the network co-processor.
type Network interface {
	Init() (BoardInfo, error)
	// Connect attempts one association. Retryable failures wrap ErrTransient.
	Connect(ssid, password string) error
	IsConnected() bool
	Status() NetStatus
}

type Response struct {
	StatusCode int
	Body       []byte
}

type HTTPClient interface {
	Get(ctx context.Context, url string) (*Response, error)
}

// Clock is the real-time clock.
type Clock interface {
	Now() time.Time
	Set(t time.Time)
}

// ScreenBuilder creates the demo pages in cycle order.
type ScreenBuilder func(width, height int) ([]page.Page, error)

// Deps are the collaborators a Controller drives.
type Deps struct {
	// OpenDisplay is called by ResetDisplay. A display that implements
	// io.Closer is closed before it is replaced.
	OpenDisplay func() (Display, error)
	Network     Network
	HTTP        HTTPClient
	Clock       Clock
	Screens     ScreenBuilder
	// Forward and Backward are the button pins; nil pins never fire.
	Forward  input.Pin
	Backward input.Pin
	// BootFont is the face of the boot page. Nil loads fonts.Boot.
	BootFont  font.Face
	Getenv    func(string) string
	Scheduler sched.Scheduler
	Logger    *log.Logger
	// OnPhase, when set, is called after every phase transition.
	OnPhase func(Phase)
}

// Config holds the controller's tunables.
type Config struct {
	Version     string
	Width       int
	Height      int
	RefreshPoll time.Duration
	Settle      time.Duration
	TimeURL     string
	SSIDEnv     string
	PasswordEnv string
	// SSID and Password are used when the environment does not set them.
	SSID     string
	Password string
}

func DefaultConfig() Config {
	return Config{
		Version:     "v0.0.2",
		Width:       64,
		Height:      32,
		RefreshPoll: time.Millisecond,
		Settle:      input.DefaultSettle,
		TimeURL:     "http://worldtimeapi.org/api/ip",
		SSIDEnv:     "CIRCUITPY_WIFI_SSID",
		PasswordEnv: "CIRCUITPY_WIFI_PASSWORD",
	}
}

func (d *Deps) setDefaults() {
	if d.Getenv == nil {
		d.Getenv = os.Getenv
	}
	if d.Scheduler == nil {
		d.Scheduler = sched.Real{}
	}
	if d.Logger == nil {
		d.Logger = log.New(os.Stderr)
	}
}
