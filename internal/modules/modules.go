// Package modules defines the pluggable discovery and HTTP check
// contracts and holds every built-in implementation. The pipeline only
// ever sees these interfaces; adding a technique means implementing one
// of them and appending it to the registry.
package modules

import (
	"context"
	"crypto/tls"
	"net/http"
	"time"
)

// Module is the metadata surface every module exposes.
type Module interface {
	// Name returns the stable module identifier, e.g. "subdomain/crtsh".
	Name() string
	// Description returns a one-line human summary.
	Description() string
}

// SubdomainModule discovers candidate subdomains for a target domain.
// Implementations return lowercase hostnames with wildcard entries already
// filtered out, and an error (never a panic) when the source is
// unreachable or unparseable. The pipeline treats an error as "this module
// found nothing" and continues with the other modules.
type SubdomainModule interface {
	Module
	Enumerate(ctx context.Context, domain string) ([]string, error)
}

// HTTPModule inspects one host:port endpoint for one specific weakness.
// (nil, nil) means the check ran and found nothing; a non-nil Finding is a
// positive match; an error means the check could not complete and is
// treated as a clean result apart from debug logging.
type HTTPModule interface {
	Module
	Scan(ctx context.Context, client *http.Client, endpoint string) (*Finding, error)
}

// FindingKind identifies which weakness a finding reports. The set is
// closed: one kind per HTTP check module.
type FindingKind string

const (
	KindDirectoryListing FindingKind = "directory_listing"
	KindDotEnvDisclosure FindingKind = "dotenv_disclosure"
	KindGitConfigLeakage FindingKind = "git_config_leakage"
	KindGitHeadLeakage   FindingKind = "git_head_leakage"
)

// Finding is a positive detection: the kind of weakness, the module that
// reported it, and the exact URL that triggered the match. Findings are
// terminal values; they are collected and reported, never mutated.
type Finding struct {
	Kind   FindingKind `json:"kind"`
	Module string      `json:"module"`
	URL    string      `json:"url"`
}

// NewHTTPClient builds the shared client used by every HTTP check: fixed
// request deadline, certificate verification disabled (scan targets
// routinely present self-signed or mismatched certs), redirects returned
// to the caller rather than followed.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
