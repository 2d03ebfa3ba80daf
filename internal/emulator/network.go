// Package emulator provides an in-process stand-in for the network
// co-processor, for running the device program without hardware.
package emulator

import (
	"fmt"
	"net"
	"sync"

	"github.com/san-kum/matrixdemo/internal/boot"
)

// Opts configures the emulated co-processor.
type Opts struct {
	Firmware string
	MAC      net.HardwareAddr
	IP       net.IP
	RSSI     int
	// Failures is the number of association attempts that fail with a
	// transient error before one succeeds. Negative never succeeds.
	Failures int
	// Networks are the access points in range; empty accepts any SSID.
	Networks map[string]string
}

// DefaultOpts mirrors a freshly flashed co-processor.
var DefaultOpts = Opts{
	Firmware: "1.7.7",
	MAC:      net.HardwareAddr{0x24, 0x0a, 0xc4, 0x12, 0x34, 0x56},
	IP:       net.IPv4(192, 168, 4, 2),
	RSSI:     -52,
}

type Network struct {
	mu        sync.Mutex
	opts      Opts
	failures  int
	attempts  int
	ssid      string
	connected bool
}

func NewNetwork(opts *Opts) *Network {
	if opts == nil {
		o := DefaultOpts
		opts = &o
	}
	return &Network{opts: *opts, failures: opts.Failures}
}

func (n *Network) Init() (boot.BoardInfo, error) {
	return boot.BoardInfo{Firmware: n.opts.Firmware, MAC: n.opts.MAC}, nil
}

func (n *Network) Connect(ssid, password string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.attempts++

	if n.failures != 0 {
		if n.failures > 0 {
			n.failures--
		}
		return fmt.Errorf("%w: no reply from %q", boot.ErrTransient, ssid)
	}
	if len(n.opts.Networks) > 0 {
		want, ok := n.opts.Networks[ssid]
		if !ok {
			return fmt.Errorf("%w: %q not in range", boot.ErrTransient, ssid)
		}
		if want != password {
			return fmt.Errorf("%w: authentication rejected by %q", boot.ErrTransient, ssid)
		}
	}
	n.ssid = ssid
	n.connected = true
	return nil
}

func (n *Network) IsConnected() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.connected
}

func (n *Network) Status() boot.NetStatus {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.connected {
		return boot.NetStatus{}
	}
	return boot.NetStatus{SSID: n.ssid, RSSI: n.opts.RSSI, IP: n.opts.IP}
}

// Attempts is the number of Connect calls so far.
func (n *Network) Attempts() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.attempts
}
