package modules

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	otxDefaultBase = "https://otx.alienvault.com"
	otxTimeout     = 15 * time.Second
	otxMaxBody     = 10 * 1024 * 1024
	otxRetryDelay  = 3 * time.Second
)

// OTX enumerates subdomains from AlienVault OTX passive DNS records.
type OTX struct {
	BaseURL   string
	UserAgent string
}

func NewOTX(userAgent string) *OTX {
	return &OTX{UserAgent: userAgent}
}

func (o *OTX) Name() string { return "subdomain/otx" }

func (o *OTX) Description() string {
	return "Enumerate subdomains from AlienVault OTX passive DNS"
}

type otxResponse struct {
	PassiveDNS []struct {
		Hostname string `json:"hostname"`
	} `json:"passive_dns"`
}

func (o *OTX) Enumerate(ctx context.Context, domain string) ([]string, error) {
	base := o.BaseURL
	if base == "" {
		base = otxDefaultBase
	}

	body, err := fetch(ctx, fetchSpec{
		url:        fmt.Sprintf("%s/api/v1/indicators/domain/%s/passive_dns", base, domain),
		userAgent:  o.UserAgent,
		accept:     "application/json",
		timeout:    otxTimeout,
		maxBody:    otxMaxBody,
		retryDelay: otxRetryDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("otx fetch for %s: %w", domain, err)
	}

	var resp otxResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("otx JSON parse: %w", err)
	}

	seen := make(map[string]bool)
	var hosts []string
	for _, rec := range resp.PassiveDNS {
		host := strings.ToLower(strings.TrimSpace(rec.Hostname))
		if host == "" || host == domain || !strings.HasSuffix(host, "."+domain) {
			continue
		}
		if !seen[host] {
			seen[host] = true
			hosts = append(hosts, host)
		}
	}

	return hosts, nil
}
