// Package probe implements reachability checks for resolved exposed
// ports.
//
// After the port lookup reports where a service is published, a caller
// often wants to know whether anything is actually accepting traffic
// there yet. The Prober asks the OS network stack directly with a short
// dial rather than parsing /proc/net/* or shelling out to external
// commands that may require elevated permissions.
package probe

import (
	"net"
	"time"
)

// defaultDialTimeout bounds a single reachability check. One second is
// enough for anything listening on the local host or a container
// gateway, which is the only place resolved ports point at.
const defaultDialTimeout = 1 * time.Second

// Prober checks whether a resolved service address is accepting
// connections.
//
// The struct is currently stateless apart from the dial timeout, but is
// defined as a struct (rather than bare functions) so future options can
// be added without breaking the API, and so it can be injected as a
// dependency in tests.
type Prober struct {
	timeout time.Duration
}

// NewProber creates a Prober with the default dial timeout.
func NewProber() *Prober {
	return &Prober{timeout: defaultDialTimeout}
}

// IsReachable reports whether host:port is accepting traffic for the
// given protocol.
//
// For TCP it attempts a full connection; success means something is
// listening. For UDP there is no handshake, so the check is limited to
// resolving and dialing the address; a "reachable" UDP port may still
// drop datagrams.
//
// Unknown protocols report unreachable to fail safe.
func (p *Prober) IsReachable(host, port, protocol string) bool {
	addr := net.JoinHostPort(host, port)

	switch protocol {
	case "", "tcp":
		conn, err := net.DialTimeout("tcp", addr, p.timeout)
		if err != nil {
			return false
		}
		defer func() { _ = conn.Close() }()
		return true

	case "udp":
		conn, err := net.DialTimeout("udp", addr, p.timeout)
		if err != nil {
			return false
		}
		defer func() { _ = conn.Close() }()
		return true

	default:
		return false
	}
}
