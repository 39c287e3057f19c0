package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/strixsec/strix/internal/config"
	"github.com/strixsec/strix/internal/engine"
	"github.com/strixsec/strix/internal/modules"
	"github.com/strixsec/strix/internal/output"
	"github.com/strixsec/strix/internal/probe"
	"github.com/strixsec/strix/internal/whois"
)

// Set via ldflags at build time.
var version = "dev"

func main() {
	output.Version = version

	rootCmd := &cobra.Command{
		Use:   "strix",
		Short: "Automated domain reconnaissance",
		Long:  "Domain recon pipeline: subdomain enumeration, DNS resolution, port probing, and HTTP exposure checks.",
	}
	rootCmd.Version = version
	rootCmd.SetVersionTemplate("strix {{.Version}}\n")

	rootCmd.AddCommand(newScanCmd(), newModulesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newScanCmd() *cobra.Command {
	var (
		jsonOutput     bool
		portsList      string
		connectTimeout time.Duration
		noColor        bool
		silent         bool
		verbose        bool
		axfr           bool
		whoisLookup    bool
		configPath     string
	)

	cmd := &cobra.Command{
		Use:   "scan <domain>",
		Short: "Run the full recon pipeline against a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			domain := strings.ToLower(strings.TrimSpace(args[0]))
			if domain == "" {
				return fmt.Errorf("domain is required")
			}

			// Respect NO_COLOR env var.
			if _, ok := os.LookupEnv("NO_COLOR"); ok {
				noColor = true
			}

			settings := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				settings = loaded
			}

			// Flags override the config file.
			if portsList != "" {
				parsed, err := parsePorts(portsList)
				if err != nil {
					return fmt.Errorf("invalid --ports: %w", err)
				}
				settings.Ports = parsed
			}
			if cmd.Flags().Changed("connect-timeout") {
				settings.ConnectTimeout = config.Duration(connectTimeout)
			}
			if err := settings.Validate(); err != nil {
				return err
			}

			cfg := engine.Config{
				Target:               domain,
				DiscoveryConcurrency: settings.Concurrency.Discovery,
				ResolveConcurrency:   settings.Concurrency.Resolve,
				ProbeConcurrency:     settings.Concurrency.PortProbe,
				ScanConcurrency:      settings.Concurrency.Scan,
			}

			// Context with signal handling for clean Ctrl+C.
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt)
			go func() {
				<-sigCh
				fmt.Fprintln(os.Stderr, "\nInterrupted, cleaning up...")
				cancel()
			}()

			// Wire up stages.
			opts := modules.Options{UserAgent: settings.UserAgent, AXFR: axfr}
			stages := engine.Stages{
				Discoverers: modules.SubdomainModules(opts),
				Checks:      modules.HTTPModules(),
				Resolver:    probe.NewResolver(settings.DNSTimeout.Std()),
				Prober:      probe.NewPortProber(settings.Ports, settings.ConnectTimeout.Std(), settings.DNSTimeout.Std()),
				Client:      modules.NewHTTPClient(settings.HTTPTimeout.Std()),
			}

			showProgress := !jsonOutput && !silent
			progress := output.NewProgress(os.Stderr, verbose, !showProgress)

			if showProgress {
				output.WriteHeader(os.Stderr, noColor)
			}

			result, err := engine.Run(ctx, cfg, stages, progress)
			if err != nil {
				return err
			}

			if whoisLookup {
				registration, err := whois.NewClient().Lookup(ctx, domain)
				if err != nil {
					warn := fmt.Sprintf("whois: %s", err)
					progress.Warn(warn)
					result.Warnings = append(result.Warnings, warn)
				} else {
					result.Registration = registration
				}
			}

			if showProgress {
				progress.Complete()
			}

			if jsonOutput {
				return output.WriteJSON(os.Stdout, result)
			}

			output.WriteHosts(os.Stdout, result, noColor)
			output.WriteFindings(os.Stdout, result, noColor)
			if result.Registration != nil {
				output.WriteWhois(os.Stdout, result.Registration, noColor)
			}
			output.WriteSummary(os.Stdout, result, noColor)

			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output structured JSON to stdout")
	cmd.Flags().StringVar(&portsList, "ports", "", "Comma-separated port list (default: top 100)")
	cmd.Flags().DurationVar(&connectTimeout, "connect-timeout", probe.DefaultConnectTimeout, "Per-port TCP connect timeout")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable terminal colors")
	cmd.Flags().BoolVar(&silent, "silent", false, "Results only, no progress output")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose per-module progress")
	cmd.Flags().BoolVar(&axfr, "axfr", false, "Attempt DNS zone transfers during discovery")
	cmd.Flags().BoolVar(&whoisLookup, "whois", false, "Include WHOIS registration details in the report")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")

	return cmd
}

func newModulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modules",
		Short: "List the available discovery and check modules",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			opts := modules.Options{UserAgent: config.DefaultUserAgent, AXFR: true}
			output.WriteModules(os.Stdout, modules.SubdomainModules(opts), modules.HTTPModules())
		},
	}
}

// parsePorts parses a comma-separated list of port numbers.
func parsePorts(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	var result []int
	seen := make(map[int]bool)

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid port %q", p)
		}
		if port < 1 || port > 65535 {
			return nil, fmt.Errorf("port %d out of range (1-65535)", port)
		}
		if !seen[port] {
			seen[port] = true
			result = append(result, port)
		}
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("no valid ports specified")
	}
	return result, nil
}
