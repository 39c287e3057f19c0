package modules

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	hackertargetDefaultBase = "https://api.hackertarget.com"
	hackertargetTimeout     = 10 * time.Second
	hackertargetMaxBody     = 5 * 1024 * 1024
	hackertargetRetryDelay  = 2 * time.Second
	hackertargetRateMsg     = "API count exceeded"
)

// HackerTarget enumerates subdomains via the HackerTarget hostsearch API,
// which answers with plain-text "host,ip" lines.
type HackerTarget struct {
	BaseURL   string
	UserAgent string
}

func NewHackerTarget(userAgent string) *HackerTarget {
	return &HackerTarget{UserAgent: userAgent}
}

func (h *HackerTarget) Name() string { return "subdomain/hackertarget" }

func (h *HackerTarget) Description() string {
	return "Enumerate subdomains from the HackerTarget hostsearch API"
}

func (h *HackerTarget) Enumerate(ctx context.Context, domain string) ([]string, error) {
	base := h.BaseURL
	if base == "" {
		base = hackertargetDefaultBase
	}

	body, err := fetch(ctx, fetchSpec{
		url:        fmt.Sprintf("%s/hostsearch/?q=%s", base, domain),
		userAgent:  h.UserAgent,
		timeout:    hackertargetTimeout,
		maxBody:    hackertargetMaxBody,
		retryDelay: hackertargetRetryDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("hackertarget fetch for %s: %w", domain, err)
	}

	// The API reports its quota limit as a plain-text body with status 200.
	if strings.Contains(string(body), hackertargetRateMsg) {
		return nil, fmt.Errorf("hackertarget: %s", hackertargetRateMsg)
	}

	return parseHackertarget(string(body), domain), nil
}

func parseHackertarget(body, domain string) []string {
	seen := make(map[string]bool)
	var hosts []string

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		host, _, _ := strings.Cut(line, ",")
		host = strings.ToLower(strings.TrimSpace(host))
		if host == "" || host == domain || !strings.HasSuffix(host, "."+domain) {
			continue
		}

		if !seen[host] {
			seen[host] = true
			hosts = append(hosts, host)
		}
	}

	return hosts
}
