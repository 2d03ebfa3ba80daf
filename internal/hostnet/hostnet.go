// Package hostnet implements the network collaborator on a Linux host,
// where association is handled by the operating system. Connect succeeds
// once an interface is up with an IPv4 address.
package hostnet

import (
	"errors"
	"fmt"
	"net"
	"runtime"
	"sync"

	"github.com/san-kum/matrixdemo/internal/boot"
)

var ErrNoInterface = errors.New("hostnet: no usable network interface")

// Iface is the part of a host interface the collaborator looks at.
type Iface struct {
	Name  string
	Up    bool
	Loop  bool
	MAC   net.HardwareAddr
	Addrs []net.IP
}

// Lister enumerates host interfaces.
type Lister func() ([]Iface, error)

// SystemInterfaces lists the interfaces of the running host.
func SystemInterfaces() ([]Iface, error) {
	ifs, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	out := make([]Iface, 0, len(ifs))
	for _, ifc := range ifs {
		it := Iface{
			Name: ifc.Name,
			Up:   ifc.Flags&net.FlagUp != 0,
			Loop: ifc.Flags&net.FlagLoopback != 0,
			MAC:  ifc.HardwareAddr,
		}
		addrs, err := ifc.Addrs()
		if err == nil {
			for _, a := range addrs {
				if ipn, ok := a.(*net.IPNet); ok {
					it.Addrs = append(it.Addrs, ipn.IP)
				}
			}
		}
		out = append(out, it)
	}
	return out, nil
}

type Network struct {
	mu     sync.Mutex
	list   Lister
	name   string
	ssid   string
	ip     net.IP
	online bool
}

// New watches the named interface, or the first non-loopback interface
// with a hardware address when name is empty.
func New(name string, list Lister) *Network {
	if list == nil {
		list = SystemInterfaces
	}
	return &Network{list: list, name: name}
}

func (n *Network) pick() (Iface, error) {
	ifs, err := n.list()
	if err != nil {
		return Iface{}, err
	}
	for _, ifc := range ifs {
		if n.name != "" {
			if ifc.Name == n.name {
				return ifc, nil
			}
			continue
		}
		if !ifc.Loop && len(ifc.MAC) > 0 {
			return ifc, nil
		}
	}
	return Iface{}, ErrNoInterface
}

func (n *Network) Init() (boot.BoardInfo, error) {
	ifc, err := n.pick()
	if err != nil {
		return boot.BoardInfo{}, err
	}
	n.mu.Lock()
	n.name = ifc.Name
	n.mu.Unlock()
	return boot.BoardInfo{
		Firmware: fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
		MAC:      ifc.MAC,
	}, nil
}

func (n *Network) Connect(ssid, password string) error {
	ifc, err := n.pick()
	if err != nil {
		return fmt.Errorf("%w: %v", boot.ErrTransient, err)
	}
	if !ifc.Up {
		return fmt.Errorf("%w: %s is down", boot.ErrTransient, ifc.Name)
	}
	for _, ip := range ifc.Addrs {
		if v4 := ip.To4(); v4 != nil && !v4.IsLinkLocalUnicast() {
			n.mu.Lock()
			n.ssid, n.ip, n.online = ssid, v4, true
			n.mu.Unlock()
			return nil
		}
	}
	return fmt.Errorf("%w: %s has no IPv4 address", boot.ErrTransient, ifc.Name)
}

func (n *Network) IsConnected() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.online
}

func (n *Network) Status() boot.NetStatus {
	n.mu.Lock()
	defer n.mu.Unlock()
	return boot.NetStatus{SSID: n.ssid, IP: n.ip}
}
