// Package engine orchestrates the five-stage recon pipeline: discovery,
// resolution, port probing, vulnerability scanning, reporting.
package engine

import (
	"context"
	"time"

	"github.com/strixsec/strix/internal/modules"
	"github.com/strixsec/strix/internal/whois"
)

// ScanResult is the top-level output of one pipeline run. Everything in it
// lives and dies with the run; there is no cross-run persistence.
type ScanResult struct {
	Target       string            `json:"target"`
	StartedAt    time.Time         `json:"started_at"`
	CompletedAt  time.Time         `json:"completed_at"`
	DurationSecs float64           `json:"duration_secs"`
	Subdomains   []string          `json:"subdomains"`
	Domains      []DomainRecord    `json:"domains"`
	Findings     []modules.Finding `json:"findings"`
	Warnings     []string          `json:"warnings,omitempty"`
	Registration *whois.Info       `json:"registration,omitempty"`
	Summary      Summary           `json:"summary"`
}

// DomainRecord pairs a resolved host with its open ports, ascending and
// duplicate-free. Hosts with no open ports keep an empty list; they simply
// generate no scan tasks downstream.
type DomainRecord struct {
	Host      string `json:"host"`
	OpenPorts []int  `json:"open_ports"`
}

// Summary holds the aggregate counts the report leads with.
type Summary struct {
	SubdomainsFound int `json:"subdomains_found"`
	ResolvedHosts   int `json:"resolved_hosts"`
	OpenPortCount   int `json:"open_port_count"`
	FindingCount    int `json:"finding_count"`
}

// HostResolver answers the resolution filter's only question.
type HostResolver interface {
	IsResolvable(ctx context.Context, host string) bool
}

// PortProber probes one resolved host and returns its open ports.
type PortProber interface {
	OpenPorts(ctx context.Context, host string) ([]int, error)
}

// ProgressReporter receives stage progress while the pipeline runs.
type ProgressReporter interface {
	Stage(num, total int, msg string)
	Detail(msg string)
	Warn(msg string)
}
