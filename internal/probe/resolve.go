// Package probe implements the per-host network probes the pipeline runs
// between discovery and vulnerability scanning: DNS resolvability and TCP
// port probing.
package probe

import (
	"context"
	"net"
	"time"
)

// DefaultDNSTimeout bounds every DNS lookup the probes issue. Without an
// explicit deadline a slow resolver can stall a whole stage.
const DefaultDNSTimeout = 5 * time.Second

// Resolver answers whether a hostname has at least one DNS answer. It is
// safe for concurrent use; the underlying resolver holds no per-call state.
type Resolver struct {
	Timeout time.Duration

	lookup func(ctx context.Context, host string) ([]string, error)
}

func NewResolver(timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = DefaultDNSTimeout
	}
	return &Resolver{Timeout: timeout}
}

// IsResolvable reports whether host resolves to at least one address. Any
// lookup failure, NXDOMAIN and timeout included, counts as unresolvable;
// the pipeline only needs the filter decision, not the cause.
func (r *Resolver) IsResolvable(ctx context.Context, host string) bool {
	lookup := r.lookup
	if lookup == nil {
		lookup = net.DefaultResolver.LookupHost
	}

	lctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	addrs, err := lookup(lctx, host)
	return err == nil && len(addrs) > 0
}
