package boot_test

import (
	"context"
	"fmt"
	"net"

	"github.com/san-kum/matrixdemo/internal/boot"
	"github.com/san-kum/matrixdemo/internal/page"
)

type fakeDisplay struct {
	notReady  int
	refreshes int
	attempts  int
	actives   int
	closed    bool
	shown     []string
	current   page.Page
	// lines records the text of every refreshed frame of a text page
	lines [][]string
}

func (d *fakeDisplay) SetActive(page.Renderable) { d.actives++ }

func (d *fakeDisplay) ShowPage(p page.Page) {
	d.current = p
	d.shown = append(d.shown, p.Name())
}

func (d *fakeDisplay) Refresh() bool {
	d.attempts++
	if d.notReady > 0 {
		d.notReady--
		return false
	}
	d.refreshes++
	if t, ok := d.current.(page.Texter); ok {
		d.lines = append(d.lines, t.Lines())
	}
	return true
}

func (d *fakeDisplay) Close() error {
	d.closed = true
	return nil
}

// sawLine reports whether any refreshed frame had text on line i.
func (d *fakeDisplay) sawLine(i int, text string) bool {
	for _, frame := range d.lines {
		if i < len(frame) && frame[i] == text {
			return true
		}
	}
	return false
}

type fakeNetwork struct {
	initErr   error
	fatalErr  error
	failures  int
	connected bool
	calls     int
	onConnect func(n int)
}

func (n *fakeNetwork) Init() (boot.BoardInfo, error) {
	if n.initErr != nil {
		return boot.BoardInfo{}, n.initErr
	}
	return boot.BoardInfo{
		Firmware: "1.7.7",
		MAC:      net.HardwareAddr{0x02, 0x00, 0x00, 0xaa, 0xbb, 0xcc},
	}, nil
}

func (n *fakeNetwork) Connect(ssid, password string) error {
	n.calls++
	if n.onConnect != nil {
		n.onConnect(n.calls)
	}
	if n.fatalErr != nil {
		return n.fatalErr
	}
	if n.failures != 0 {
		n.failures--
		return fmt.Errorf("%w: no access point", boot.ErrTransient)
	}
	n.connected = true
	return nil
}

func (n *fakeNetwork) IsConnected() bool { return n.connected }

func (n *fakeNetwork) Status() boot.NetStatus {
	return boot.NetStatus{SSID: "lab", RSSI: -48, IP: net.IPv4(10, 0, 0, 5)}
}

type fakeHTTP struct {
	resp  *boot.Response
	err   error
	calls int
	urls  []string
}

func (h *fakeHTTP) Get(_ context.Context, url string) (*boot.Response, error) {
	h.calls++
	h.urls = append(h.urls, url)
	return h.resp, h.err
}
