package engine

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/strixsec/strix/internal/modules"
)

type fakeDiscoverer struct {
	name  string
	hosts []string
	err   error
}

func (f *fakeDiscoverer) Name() string        { return f.name }
func (f *fakeDiscoverer) Description() string { return "test discoverer" }

func (f *fakeDiscoverer) Enumerate(_ context.Context, _ string) ([]string, error) {
	return f.hosts, f.err
}

type fakeResolver struct {
	resolvable map[string]bool
}

func (f *fakeResolver) IsResolvable(_ context.Context, host string) bool {
	return f.resolvable[host]
}

type fakeProber struct {
	ports map[string][]int
	errs  map[string]error

	mu    sync.Mutex
	calls []string
}

func (f *fakeProber) OpenPorts(_ context.Context, host string) ([]int, error) {
	f.mu.Lock()
	f.calls = append(f.calls, host)
	f.mu.Unlock()
	if err := f.errs[host]; err != nil {
		return nil, err
	}
	return f.ports[host], nil
}

type fakeCheck struct {
	name    string
	finding *modules.Finding
	err     error

	// Scan runs from concurrent workers; endpoints is read only after
	// Run returns.
	mu        sync.Mutex
	endpoints []string
}

func (f *fakeCheck) Name() string        { return f.name }
func (f *fakeCheck) Description() string { return "test check" }

func (f *fakeCheck) Scan(_ context.Context, _ *http.Client, endpoint string) (*modules.Finding, error) {
	f.mu.Lock()
	f.endpoints = append(f.endpoints, endpoint)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.finding == nil {
		return nil, nil
	}
	found := *f.finding
	found.URL = "http://" + endpoint + found.URL
	return &found, nil
}

type nullProgress struct{}

func (nullProgress) Stage(_, _ int, _ string) {}
func (nullProgress) Detail(_ string)          {}
func (nullProgress) Warn(_ string)            {}

func TestRunFullPipeline(t *testing.T) {
	discoverer := &fakeDiscoverer{
		name:  "subdomain/fake",
		hosts: []string{"www.example.com", "api.example.com", "old.example.com"},
	}
	resolver := &fakeResolver{resolvable: map[string]bool{
		"www.example.com": true,
		"api.example.com": true,
	}}
	prober := &fakeProber{ports: map[string][]int{
		"www.example.com": {80, 443},
		"api.example.com": {},
	}}
	check := &fakeCheck{
		name:    "http/git_head_leakage",
		finding: &modules.Finding{Kind: modules.KindGitHeadLeakage, Module: "http/git_head_leakage", URL: "/.git/HEAD"},
	}

	result, err := Run(context.Background(), Config{Target: "example.com"}, Stages{
		Discoverers: []modules.SubdomainModule{discoverer},
		Checks:      []modules.HTTPModule{check},
		Resolver:    resolver,
		Prober:      prober,
		Client:      http.DefaultClient,
	}, nullProgress{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := len(result.Subdomains); got != 3 {
		t.Fatalf("expected 3 subdomains, got %d: %v", got, result.Subdomains)
	}
	if got := len(result.Domains); got != 2 {
		t.Fatalf("expected 2 resolved hosts, got %d", got)
	}
	if result.Domains[0].Host != "api.example.com" || result.Domains[1].Host != "www.example.com" {
		t.Errorf("domains not sorted by host: %+v", result.Domains)
	}
	// Only www has open ports, so the check runs against its two endpoints.
	if got := len(check.endpoints); got != 2 {
		t.Fatalf("expected 2 scan tasks, got %d: %v", got, check.endpoints)
	}
	if got := len(result.Findings); got != 2 {
		t.Fatalf("expected 2 findings, got %d", got)
	}

	s := result.Summary
	if s.SubdomainsFound != 3 || s.ResolvedHosts != 2 || s.OpenPortCount != 2 || s.FindingCount != 2 {
		t.Errorf("unexpected summary: %+v", s)
	}
}

func TestRunNormalizesDiscoveredNames(t *testing.T) {
	discoverer := &fakeDiscoverer{
		name: "subdomain/fake",
		hosts: []string{
			"WWW.Example.COM",
			"www.example.com",
			"mail.example.com.",
			"*.example.com",
			"example.com",
			"",
		},
	}

	result, err := Run(context.Background(), Config{Target: "example.com"}, Stages{
		Discoverers: []modules.SubdomainModule{discoverer},
		Resolver:    &fakeResolver{},
		Prober:      &fakeProber{},
		Client:      http.DefaultClient,
	}, nullProgress{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"mail.example.com", "www.example.com"}
	if len(result.Subdomains) != len(want) {
		t.Fatalf("expected %v, got %v", want, result.Subdomains)
	}
	for i := range want {
		if result.Subdomains[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, result.Subdomains)
		}
	}
}

func TestRunTaskCountMatchesOpenPorts(t *testing.T) {
	discoverer := &fakeDiscoverer{name: "subdomain/fake", hosts: []string{"a.example.com"}}
	resolver := &fakeResolver{resolvable: map[string]bool{"a.example.com": true}}
	prober := &fakeProber{ports: map[string][]int{"a.example.com": {443}}}
	checks := []modules.HTTPModule{
		&fakeCheck{name: "http/one"},
		&fakeCheck{name: "http/two"},
		&fakeCheck{name: "http/three"},
	}

	result, err := Run(context.Background(), Config{Target: "example.com"}, Stages{
		Discoverers: []modules.SubdomainModule{discoverer},
		Checks:      checks,
		Resolver:    resolver,
		Prober:      prober,
		Client:      http.DefaultClient,
	}, nullProgress{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, m := range checks {
		fc := m.(*fakeCheck)
		if len(fc.endpoints) != 1 {
			t.Errorf("%s: expected 1 task, got %d", fc.name, len(fc.endpoints))
		}
		if len(fc.endpoints) == 1 && fc.endpoints[0] != "a.example.com:443" {
			t.Errorf("%s: unexpected endpoint %q", fc.name, fc.endpoints[0])
		}
	}
	if len(result.Findings) != 0 {
		t.Errorf("clean checks should yield no findings, got %d", len(result.Findings))
	}
}

func TestRunModuleErrorBecomesWarning(t *testing.T) {
	broken := &fakeDiscoverer{name: "subdomain/broken", err: errors.New("upstream unavailable")}
	working := &fakeDiscoverer{name: "subdomain/working", hosts: []string{"ok.example.com"}}

	result, err := Run(context.Background(), Config{Target: "example.com"}, Stages{
		Discoverers: []modules.SubdomainModule{broken, working},
		Resolver:    &fakeResolver{},
		Prober:      &fakeProber{},
		Client:      http.DefaultClient,
	}, nullProgress{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.Subdomains) != 1 || result.Subdomains[0] != "ok.example.com" {
		t.Fatalf("expected working module's output, got %v", result.Subdomains)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "subdomain/broken") {
		t.Fatalf("expected one warning naming the broken module, got %v", result.Warnings)
	}
}

func TestRunProbeErrorKeepsHost(t *testing.T) {
	discoverer := &fakeDiscoverer{name: "subdomain/fake", hosts: []string{"gone.example.com", "up.example.com"}}
	resolver := &fakeResolver{resolvable: map[string]bool{
		"gone.example.com": true,
		"up.example.com":   true,
	}}
	prober := &fakeProber{
		ports: map[string][]int{"up.example.com": {80}},
		errs:  map[string]error{"gone.example.com": errors.New("resolve gone.example.com: no such host")},
	}
	check := &fakeCheck{name: "http/one"}

	result, err := Run(context.Background(), Config{Target: "example.com"}, Stages{
		Discoverers: []modules.SubdomainModule{discoverer},
		Checks:      []modules.HTTPModule{check},
		Resolver:    resolver,
		Prober:      prober,
		Client:      http.DefaultClient,
	}, nullProgress{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.Domains) != 2 {
		t.Fatalf("failed host must keep its record, got %d records", len(result.Domains))
	}
	if got := len(result.Warnings); got != 1 {
		t.Fatalf("expected 1 warning, got %d: %v", got, result.Warnings)
	}
	if got := len(check.endpoints); got != 1 || check.endpoints[0] != "up.example.com:80" {
		t.Fatalf("expected scan against up.example.com:80 only, got %v", check.endpoints)
	}
}

func TestRunScanErrorTreatedAsClean(t *testing.T) {
	discoverer := &fakeDiscoverer{name: "subdomain/fake", hosts: []string{"a.example.com"}}
	resolver := &fakeResolver{resolvable: map[string]bool{"a.example.com": true}}
	prober := &fakeProber{ports: map[string][]int{"a.example.com": {80}}}
	check := &fakeCheck{name: "http/flaky", err: errors.New("connection reset")}

	result, err := Run(context.Background(), Config{Target: "example.com"}, Stages{
		Discoverers: []modules.SubdomainModule{discoverer},
		Checks:      []modules.HTTPModule{check},
		Resolver:    resolver,
		Prober:      prober,
		Client:      http.DefaultClient,
	}, nullProgress{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.Findings) != 0 {
		t.Errorf("scan errors must not produce findings, got %d", len(result.Findings))
	}
	if len(result.Warnings) != 0 {
		t.Errorf("scan errors are debug-level, not warnings: %v", result.Warnings)
	}
}

func TestRunRejectsEmptyTarget(t *testing.T) {
	_, err := Run(context.Background(), Config{}, Stages{
		Resolver: &fakeResolver{},
		Prober:   &fakeProber{},
		Client:   http.DefaultClient,
	}, nullProgress{})
	if err == nil {
		t.Fatal("expected error for empty target")
	}
}
