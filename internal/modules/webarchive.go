package modules

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	webarchiveDefaultBase = "https://web.archive.org"
	webarchiveTimeout     = 30 * time.Second
	webarchiveMaxBody     = 50 * 1024 * 1024
	webarchiveRetryDelay  = 3 * time.Second
)

// WebArchive enumerates subdomains from the Wayback Machine CDX index:
// every archived URL under the target domain contributes its hostname.
type WebArchive struct {
	BaseURL   string
	UserAgent string
}

func NewWebArchive(userAgent string) *WebArchive {
	return &WebArchive{UserAgent: userAgent}
}

func (w *WebArchive) Name() string { return "subdomain/webarchive" }

func (w *WebArchive) Description() string {
	return "Enumerate subdomains from web.archive.org archived URLs"
}

func (w *WebArchive) Enumerate(ctx context.Context, domain string) ([]string, error) {
	base := w.BaseURL
	if base == "" {
		base = webarchiveDefaultBase
	}

	body, err := fetch(ctx, fetchSpec{
		url: fmt.Sprintf(
			"%s/cdx/search/cdx?matchType=domain&fl=original&output=json&collapse=urlkey&url=%s",
			base, url.QueryEscape(domain)),
		userAgent:  w.UserAgent,
		accept:     "application/json",
		timeout:    webarchiveTimeout,
		maxBody:    webarchiveMaxBody,
		retryDelay: webarchiveRetryDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("web.archive.org fetch for %s: %w", domain, err)
	}

	return parseWebArchive(body, domain)
}

// parseWebArchive extracts hostnames from a CDX JSON response: an array of
// single-column rows, the first row being the ["original"] header.
func parseWebArchive(body []byte, domain string) ([]string, error) {
	var rows [][]string
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("web.archive.org JSON parse: %w", err)
	}
	if len(rows) > 0 {
		rows = rows[1:] // header row
	}

	seen := make(map[string]bool)
	var hosts []string

	for _, row := range rows {
		for _, raw := range row {
			u, err := url.Parse(raw)
			if err != nil {
				continue
			}
			host := strings.ToLower(u.Hostname())
			if host == "" || host == domain {
				continue
			}
			if !seen[host] {
				seen[host] = true
				hosts = append(hosts, host)
			}
		}
	}

	return hosts, nil
}
