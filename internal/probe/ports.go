package probe

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strconv"
	"time"
)

// DefaultConnectTimeout is the per-attempt TCP connect deadline.
const DefaultConnectTimeout = 3 * time.Second

// PortProber attempts TCP connects against a fixed candidate port list.
// No banner grab, no handshake beyond connection establishment: a
// successful connect means the port is open.
type PortProber struct {
	Ports          []int
	ConnectTimeout time.Duration
	DNSTimeout     time.Duration

	lookup func(ctx context.Context, host string) ([]string, error)
	dial   func(ctx context.Context, timeout time.Duration, addr string) error
}

func NewPortProber(ports []int, connectTimeout, dnsTimeout time.Duration) *PortProber {
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}
	if dnsTimeout <= 0 {
		dnsTimeout = DefaultDNSTimeout
	}
	return &PortProber{
		Ports:          dedupePorts(ports),
		ConnectTimeout: connectTimeout,
		DNSTimeout:     dnsTimeout,
	}
}

// OpenPorts resolves host once, then probes every candidate port against
// the first resolved address. The returned list is ascending and
// duplicate-free. A resolution failure is an error for this host only;
// callers log it and move on with the rest of the working set.
func (p *PortProber) OpenPorts(ctx context.Context, host string) ([]int, error) {
	lookup := p.lookup
	if lookup == nil {
		lookup = net.DefaultResolver.LookupHost
	}

	lctx, cancel := context.WithTimeout(ctx, p.DNSTimeout)
	addrs, err := lookup(lctx, host)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", host, err)
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("resolve %s: no addresses", host)
	}
	ip := addrs[0]

	dial := p.dial
	if dial == nil {
		dial = dialTCP
	}

	var open []int
	for _, port := range p.Ports {
		select {
		case <-ctx.Done():
			return open, ctx.Err()
		default:
		}

		addr := net.JoinHostPort(ip, strconv.Itoa(port))
		if dial(ctx, p.ConnectTimeout, addr) == nil {
			open = append(open, port)
		}
	}

	sort.Ints(open)
	return open, nil
}

func dialTCP(ctx context.Context, timeout time.Duration, addr string) error {
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	return conn.Close()
}

func dedupePorts(ports []int) []int {
	seen := make(map[int]bool, len(ports))
	out := make([]int, 0, len(ports))
	for _, p := range ports {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	sort.Ints(out)
	return out
}
