package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/strixsec/strix/internal/engine"
	"github.com/strixsec/strix/internal/whois"
)

// Version is set via ldflags at build time.
var Version = "dev"

// WriteHeader prints the strix banner.
func WriteHeader(w io.Writer, noColor bool) {
	if noColor {
		fmt.Fprintf(w, "strix %s\n\n", Version)
	} else {
		fmt.Fprintf(w, "\033[1mstrix %s\033[0m\n\n", Version)
	}
}

// WriteSummary prints the post-scan summary.
func WriteSummary(w io.Writer, result *engine.ScanResult, noColor bool) {
	s := result.Summary

	fmt.Fprintln(w)
	if noColor {
		fmt.Fprintf(w, "Target: %s\n", result.Target)
		fmt.Fprintf(w, "Subdomains: %d discovered, %d resolved\n", s.SubdomainsFound, s.ResolvedHosts)
		fmt.Fprintf(w, "Open ports: %d across %d hosts\n", s.OpenPortCount, s.ResolvedHosts)
	} else {
		fmt.Fprintf(w, "\033[1mTarget:\033[0m %s\n", result.Target)
		fmt.Fprintf(w, "\033[1mSubdomains:\033[0m %d discovered, %d resolved\n", s.SubdomainsFound, s.ResolvedHosts)
		fmt.Fprintf(w, "\033[1mOpen ports:\033[0m %d across %d hosts\n", s.OpenPortCount, s.ResolvedHosts)
	}

	if s.FindingCount > 0 {
		if noColor {
			fmt.Fprintf(w, "! %d findings require attention\n", s.FindingCount)
		} else {
			fmt.Fprintf(w, "\033[33m!\033[0m %d findings require attention\n", s.FindingCount)
		}
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%d warnings during scan:\n", len(result.Warnings))
		for _, warn := range result.Warnings {
			fmt.Fprintf(w, "  %s\n", warn)
		}
	}
}

// WriteWhois prints the registration details section.
func WriteWhois(w io.Writer, info *whois.Info, noColor bool) {
	fmt.Fprintln(w)
	if noColor {
		fmt.Fprintln(w, "Registration:")
	} else {
		fmt.Fprintln(w, "\033[1mRegistration:\033[0m")
	}

	writeField(w, "Registrar", info.Registrar)
	writeField(w, "Created", info.Created)
	writeField(w, "Expires", info.Expires)
	writeField(w, "Name servers", strings.Join(info.NameServers, ", "))
	writeField(w, "Statuses", strings.Join(info.Statuses, ", "))
}

func writeField(w io.Writer, label, value string) {
	if value == "" {
		value = "<not available>"
	}
	fmt.Fprintf(w, "  %s: %s\n", label, value)
}
