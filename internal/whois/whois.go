// Package whois looks up registration details for the scan target.
package whois

import (
	"context"
	"fmt"
	"strings"

	whoisclient "github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
)

// Info holds the registration fields worth surfacing in a report.
type Info struct {
	Registrar   string   `json:"registrar,omitempty"`
	Created     string   `json:"created,omitempty"`
	Expires     string   `json:"expires,omitempty"`
	NameServers []string `json:"name_servers,omitempty"`
	Statuses    []string `json:"statuses,omitempty"`
}

// Client performs WHOIS lookups.
type Client struct {
	// query is swapped out in tests.
	query func(domain string) (string, error)
}

func NewClient() *Client { return &Client{} }

// Lookup queries the WHOIS system for domain and parses the response. The
// underlying protocol client has no context support, so the query runs in
// a goroutine; on cancellation the in-flight query is abandoned and left
// to time out on its own.
func (c *Client) Lookup(ctx context.Context, domain string) (*Info, error) {
	query := c.query
	if query == nil {
		query = func(d string) (string, error) { return whoisclient.Whois(d) }
	}

	type response struct {
		raw string
		err error
	}
	ch := make(chan response, 1)
	go func() {
		raw, err := query(domain)
		ch <- response{raw: raw, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return nil, fmt.Errorf("whois query for %s: %w", domain, r.err)
		}
		return Parse(r.raw)
	}
}

// Parse extracts registration info from a raw WHOIS response.
func Parse(raw string) (*Info, error) {
	parsed, err := whoisparser.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse whois response: %w", err)
	}

	info := &Info{}
	if parsed.Registrar != nil {
		info.Registrar = parsed.Registrar.Name
	}
	if parsed.Domain != nil {
		info.Created = parsed.Domain.CreatedDate
		info.Expires = parsed.Domain.ExpirationDate
		info.Statuses = parsed.Domain.Status
		for _, ns := range parsed.Domain.NameServers {
			ns = strings.ToLower(strings.TrimSpace(ns))
			if ns != "" {
				info.NameServers = append(info.NameServers, ns)
			}
		}
	}
	return info, nil
}
