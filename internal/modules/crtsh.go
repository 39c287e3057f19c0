package modules

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	crtshDefaultBase = "https://crt.sh"
	crtshTimeout     = 30 * time.Second
	crtshMaxBody     = 50 * 1024 * 1024 // crt.sh answers can be huge
	crtshRetryDelay  = 3 * time.Second
)

// CrtSh enumerates subdomains from crt.sh Certificate Transparency logs.
type CrtSh struct {
	// BaseURL overrides the crt.sh endpoint; tests point it at a local server.
	BaseURL   string
	UserAgent string
}

func NewCrtSh(userAgent string) *CrtSh {
	return &CrtSh{UserAgent: userAgent}
}

func (c *CrtSh) Name() string { return "subdomain/crtsh" }

func (c *CrtSh) Description() string {
	return "Enumerate subdomains from crt.sh certificate transparency logs"
}

type crtshEntry struct {
	NameValue string `json:"name_value"`
}

func (c *CrtSh) Enumerate(ctx context.Context, domain string) ([]string, error) {
	base := c.BaseURL
	if base == "" {
		base = crtshDefaultBase
	}

	body, err := fetch(ctx, fetchSpec{
		url:        fmt.Sprintf("%s/?q=%%25.%s&output=json", base, domain),
		userAgent:  c.UserAgent,
		accept:     "application/json",
		timeout:    crtshTimeout,
		maxBody:    crtshMaxBody,
		retryDelay: crtshRetryDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("crt.sh fetch for %s: %w", domain, err)
	}

	return parseCrtsh(body, domain)
}

// parseCrtsh extracts hostnames from the crt.sh JSON response. A
// name_value field may hold several names separated by newlines; wildcard
// entries are dropped, names outside the target are dropped, and the
// parent domain itself is excluded.
func parseCrtsh(body []byte, domain string) ([]string, error) {
	var entries []crtshEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("crt.sh JSON parse: %w", err)
	}

	seen := make(map[string]bool)
	var hosts []string

	for _, entry := range entries {
		for _, name := range strings.Split(entry.NameValue, "\n") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" || strings.Contains(name, "*") {
				continue
			}
			if name == domain || !strings.HasSuffix(name, "."+domain) {
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
