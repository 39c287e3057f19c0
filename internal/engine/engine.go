package engine

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/strixsec/strix/internal/modules"
	"github.com/strixsec/strix/internal/pool"
)

// Per-stage concurrency ceilings. These are the single knob for tuning
// throughput against resource pressure; a config file may override them.
const (
	DefaultDiscoveryConcurrency = 20
	DefaultResolveConcurrency   = 100
	DefaultProbeConcurrency     = 256
	DefaultScanConcurrency      = 100
)

const totalStages = 5

// Config holds the runtime configuration for one pipeline run.
type Config struct {
	Target string

	DiscoveryConcurrency int
	ResolveConcurrency   int
	ProbeConcurrency     int
	ScanConcurrency      int
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.DiscoveryConcurrency <= 0 {
		out.DiscoveryConcurrency = DefaultDiscoveryConcurrency
	}
	if out.ResolveConcurrency <= 0 {
		out.ResolveConcurrency = DefaultResolveConcurrency
	}
	if out.ProbeConcurrency <= 0 {
		out.ProbeConcurrency = DefaultProbeConcurrency
	}
	if out.ScanConcurrency <= 0 {
		out.ScanConcurrency = DefaultScanConcurrency
	}
	return out
}

// Stages holds the injectable collaborators for one run: the module
// registries, the probes, and the shared HTTP client the checks use.
type Stages struct {
	Discoverers []modules.SubdomainModule
	Checks      []modules.HTTPModule
	Resolver    HostResolver
	Prober      PortProber
	Client      *http.Client
}

// scanTask is one (check module, endpoint) unit of work for the final
// stage. Tasks are generated lazily and streamed, never materialized.
type scanTask struct {
	module   modules.HTTPModule
	endpoint string
}

// Run executes the full pipeline. Each stage is a complete fan-out/fan-in
// round: the next stage never starts before the previous stage's output
// collection is final. Failures local to one module or host never
// propagate past their stage boundary.
func Run(ctx context.Context, cfg Config, stages Stages, progress ProgressReporter) (*ScanResult, error) {
	if cfg.Target == "" {
		return nil, fmt.Errorf("target domain is required")
	}
	if stages.Resolver == nil || stages.Prober == nil || stages.Client == nil {
		return nil, fmt.Errorf("pipeline collaborators not fully wired")
	}
	cfg = cfg.withDefaults()

	result := &ScanResult{
		Target:    cfg.Target,
		StartedAt: time.Now(),
	}

	// Stage 1: discovery.
	progress.Stage(1, totalStages, fmt.Sprintf("Enumerating subdomains of %s...", cfg.Target))

	type discovered struct {
		module string
		hosts  []string
		err    error
	}
	found := pool.Map(ctx, stages.Discoverers, cfg.DiscoveryConcurrency,
		func(ctx context.Context, m modules.SubdomainModule) (discovered, bool) {
			hosts, err := m.Enumerate(ctx, cfg.Target)
			return discovered{module: m.Name(), hosts: hosts, err: err}, true
		})

	var raw []string
	for _, d := range found {
		if d.err != nil {
			warn := fmt.Sprintf("%s: %s", d.module, d.err)
			progress.Warn(warn)
			result.Warnings = append(result.Warnings, warn)
			continue
		}
		progress.Detail(fmt.Sprintf("%s: %d names", d.module, len(d.hosts)))
		raw = append(raw, d.hosts...)
	}

	result.Subdomains = normalizeHosts(raw, cfg.Target)
	progress.Detail(fmt.Sprintf("%d unique subdomains discovered", len(result.Subdomains)))

	// Stage 2: resolution filter.
	progress.Stage(2, totalStages, fmt.Sprintf("Resolving %d subdomains...", len(result.Subdomains)))

	resolved := pool.Map(ctx, result.Subdomains, cfg.ResolveConcurrency,
		func(ctx context.Context, host string) (string, bool) {
			return host, stages.Resolver.IsResolvable(ctx, host)
		})
	sort.Strings(resolved)
	progress.Detail(fmt.Sprintf("%d subdomains resolved", len(resolved)))

	// Stage 3: port probing.
	progress.Stage(3, totalStages, fmt.Sprintf("Probing ports on %d hosts...", len(resolved)))

	type probed struct {
		record DomainRecord
		err    error
	}
	probes := pool.Map(ctx, resolved, cfg.ProbeConcurrency,
		func(ctx context.Context, host string) (probed, bool) {
			open, err := stages.Prober.OpenPorts(ctx, host)
			return probed{record: DomainRecord{Host: host, OpenPorts: open}, err: err}, true
		})

	openPortCount := 0
	for _, p := range probes {
		if p.err != nil {
			// A host that stopped resolving mid-run keeps its (empty)
			// record; only this host's probing is affected.
			warn := fmt.Sprintf("port probe %s: %s", p.record.Host, p.err)
			progress.Warn(warn)
			result.Warnings = append(result.Warnings, warn)
		}
		openPortCount += len(p.record.OpenPorts)
		result.Domains = append(result.Domains, p.record)
	}
	sort.Slice(result.Domains, func(i, j int) bool {
		return result.Domains[i].Host < result.Domains[j].Host
	})
	progress.Detail(fmt.Sprintf("%d open ports across %d hosts", openPortCount, len(result.Domains)))

	// Stage 4: vulnerability scanning over the streamed
	// (host x open port x check module) product.
	taskCount := openPortCount * len(stages.Checks)
	progress.Stage(4, totalStages, fmt.Sprintf("Running %d endpoint checks...", taskCount))

	tasks := make(chan scanTask)
	go func() {
		defer close(tasks)
		for _, d := range result.Domains {
			for _, port := range d.OpenPorts {
				endpoint := net.JoinHostPort(d.Host, strconv.Itoa(port))
				for _, m := range stages.Checks {
					select {
					case tasks <- scanTask{module: m, endpoint: endpoint}:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	findings := pool.MapChan(ctx, tasks, cfg.ScanConcurrency,
		func(ctx context.Context, t scanTask) (modules.Finding, bool) {
			finding, err := t.module.Scan(ctx, stages.Client, t.endpoint)
			if err != nil {
				progress.Detail(fmt.Sprintf("%s %s: %s", t.module.Name(), t.endpoint, err))
				return modules.Finding{}, false
			}
			if finding == nil {
				return modules.Finding{}, false
			}
			return *finding, true
		})

	sort.Slice(findings, func(i, j int) bool {
		if findings[i].URL != findings[j].URL {
			return findings[i].URL < findings[j].URL
		}
		return findings[i].Kind < findings[j].Kind
	})
	result.Findings = findings
	progress.Detail(fmt.Sprintf("%d findings", len(findings)))

	// Stage 5: reporting happens in the caller; close out the run.
	progress.Stage(5, totalStages, "Building report...")

	result.CompletedAt = time.Now()
	result.DurationSecs = result.CompletedAt.Sub(result.StartedAt).Seconds()
	result.Summary = Summary{
		SubdomainsFound: len(result.Subdomains),
		ResolvedHosts:   len(result.Domains),
		OpenPortCount:   openPortCount,
		FindingCount:    len(result.Findings),
	}

	return result, nil
}

// normalizeHosts folds every discovered name to lowercase, strips trailing
// dots, and drops empties, wildcard entries, duplicates, and the target
// itself. The output is sorted for deterministic reporting.
func normalizeHosts(raw []string, target string) []string {
	target = strings.ToLower(target)
	seen := make(map[string]bool, len(raw))
	var hosts []string

	for _, name := range raw {
		name = strings.ToLower(strings.TrimSpace(name))
		name = strings.TrimSuffix(name, ".")
		if name == "" || name == target || strings.Contains(name, "*") {
			continue
		}
		if !seen[name] {
			seen[name] = true
			hosts = append(hosts, name)
		}
	}

	sort.Strings(hosts)
	return hosts
}
