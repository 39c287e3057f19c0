// Package config loads scan settings from an optional YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/strixsec/strix/internal/engine"
	"github.com/strixsec/strix/internal/probe"
	"github.com/strixsec/strix/pkg/ports"
)

// Settings holds every tunable the CLI exposes. Zero values in the file
// mean "keep the default".
type Settings struct {
	Ports          []int       `yaml:"ports"`
	UserAgent      string      `yaml:"user_agent"`
	ConnectTimeout Duration    `yaml:"connect_timeout"`
	HTTPTimeout    Duration    `yaml:"http_timeout"`
	DNSTimeout     Duration    `yaml:"dns_timeout"`
	Concurrency    Concurrency `yaml:"concurrency"`
}

// Duration is a time.Duration that unmarshals from strings like "3s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Concurrency holds the per-stage worker ceilings.
type Concurrency struct {
	Discovery int `yaml:"discovery"`
	Resolve   int `yaml:"resolve"`
	PortProbe int `yaml:"port_probe"`
	Scan      int `yaml:"scan"`
}

// DefaultUserAgent identifies strix to the services it queries.
const DefaultUserAgent = "strix/1.0"

// DefaultHTTPTimeout bounds each vulnerability check request.
const DefaultHTTPTimeout = 30 * time.Second

// Default returns the settings used when no config file is given.
func Default() Settings {
	return Settings{
		Ports:          ports.Top100,
		UserAgent:      DefaultUserAgent,
		ConnectTimeout: Duration(probe.DefaultConnectTimeout),
		HTTPTimeout:    Duration(DefaultHTTPTimeout),
		DNSTimeout:     Duration(probe.DefaultDNSTimeout),
		Concurrency: Concurrency{
			Discovery: engine.DefaultDiscoveryConcurrency,
			Resolve:   engine.DefaultResolveConcurrency,
			PortProbe: engine.DefaultProbeConcurrency,
			Scan:      engine.DefaultScanConcurrency,
		},
	}
}

// Load reads the YAML file at path and overlays it on the defaults.
func Load(path string) (Settings, error) {
	settings := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("read config: %w", err)
	}

	var file Settings
	if err := yaml.Unmarshal(data, &file); err != nil {
		return settings, fmt.Errorf("parse config %s: %w", path, err)
	}

	if len(file.Ports) > 0 {
		settings.Ports = file.Ports
	}
	if file.UserAgent != "" {
		settings.UserAgent = file.UserAgent
	}
	if file.ConnectTimeout > 0 {
		settings.ConnectTimeout = file.ConnectTimeout
	}
	if file.HTTPTimeout > 0 {
		settings.HTTPTimeout = file.HTTPTimeout
	}
	if file.DNSTimeout > 0 {
		settings.DNSTimeout = file.DNSTimeout
	}
	if file.Concurrency.Discovery > 0 {
		settings.Concurrency.Discovery = file.Concurrency.Discovery
	}
	if file.Concurrency.Resolve > 0 {
		settings.Concurrency.Resolve = file.Concurrency.Resolve
	}
	if file.Concurrency.PortProbe > 0 {
		settings.Concurrency.PortProbe = file.Concurrency.PortProbe
	}
	if file.Concurrency.Scan > 0 {
		settings.Concurrency.Scan = file.Concurrency.Scan
	}

	return settings, nil
}

// Validate rejects settings a scan cannot run with.
func (s Settings) Validate() error {
	if len(s.Ports) == 0 {
		return fmt.Errorf("port list is empty")
	}
	for _, p := range s.Ports {
		if p < 1 || p > 65535 {
			return fmt.Errorf("port %d out of range", p)
		}
	}
	return nil
}
