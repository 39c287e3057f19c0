package modules

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
)

const (
	axfrDialTimeout = 10 * time.Second
	axfrReadTimeout = 30 * time.Second
	axfrNSTimeout   = 5 * time.Second
)

// AXFR enumerates subdomains by attempting DNS zone transfers against the
// target's nameservers. Most zones refuse AXFR; a refusal is not an error
// for that nameserver, just an empty contribution. Opt-in via --axfr.
type AXFR struct {
	// lookupNS and transferIn are swapped out in tests.
	lookupNS   func(ctx context.Context, domain string) ([]*net.NS, error)
	transferIn func(domain, nameserver string) ([]string, error)
}

func NewAXFR() *AXFR { return &AXFR{} }

func (a *AXFR) Name() string { return "subdomain/axfr" }

func (a *AXFR) Description() string {
	return "Enumerate subdomains via DNS zone transfers against the target's nameservers"
}

func (a *AXFR) Enumerate(ctx context.Context, domain string) ([]string, error) {
	nsCtx, cancel := context.WithTimeout(ctx, axfrNSTimeout)
	defer cancel()

	lookupNS := a.lookupNS
	if lookupNS == nil {
		lookupNS = net.DefaultResolver.LookupNS
	}
	nameservers, err := lookupNS(nsCtx, domain)
	if err != nil {
		return nil, fmt.Errorf("NS lookup for %s: %w", domain, err)
	}
	if len(nameservers) == 0 {
		return nil, fmt.Errorf("no NS records for %s", domain)
	}

	transfer := a.transferIn
	if transfer == nil {
		transfer = attemptAXFR
	}

	seen := make(map[string]bool)
	var hosts []string

	for _, ns := range nameservers {
		select {
		case <-ctx.Done():
			return hosts, ctx.Err()
		default:
		}

		names, err := transfer(domain, strings.TrimSuffix(ns.Host, "."))
		if err != nil {
			continue
		}
		for _, h := range names {
			if h == domain || seen[h] {
				continue
			}
			seen[h] = true
			hosts = append(hosts, h)
		}
	}

	return hosts, nil
}

// attemptAXFR runs one zone transfer and returns the in-zone hostnames.
func attemptAXFR(domain, nameserver string) ([]string, error) {
	transfer := &dns.Transfer{
		DialTimeout: axfrDialTimeout,
		ReadTimeout: axfrReadTimeout,
	}

	msg := new(dns.Msg)
	msg.SetAxfr(dns.Fqdn(domain))

	channel, err := transfer.In(msg, net.JoinHostPort(nameserver, "53"))
	if err != nil {
		return nil, fmt.Errorf("AXFR to %s: %w", nameserver, err)
	}

	suffix := "." + strings.ToLower(domain)
	seen := make(map[string]bool)
	var hosts []string

	for envelope := range channel {
		if envelope.Error != nil {
			return nil, fmt.Errorf("AXFR envelope from %s: %w", nameserver, envelope.Error)
		}
		for _, rr := range envelope.RR {
			name := strings.ToLower(strings.TrimSuffix(rr.Header().Name, "."))
			if name == "" || !strings.HasSuffix(name, suffix) {
				continue
			}
			if !seen[name] {
				seen[name] = true
				hosts = append(hosts, name)
			}
		}
	}

	return hosts, nil
}
