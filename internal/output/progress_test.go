package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressStageAndWarnFormat(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, false, false)

	p.Stage(2, 5, "Resolving 41 subdomains...")
	p.Warn("subdomain/otx: unexpected status 503")
	p.Complete()

	out := buf.String()
	if !strings.Contains(out, "[2/5] Resolving 41 subdomains...") {
		t.Errorf("missing stage header in %q", out)
	}
	if !strings.Contains(out, "  warning: subdomain/otx: unexpected status 503") {
		t.Errorf("missing warning line in %q", out)
	}
	if !strings.Contains(out, "with 1 warnings") {
		t.Errorf("completion line should count warnings, got %q", out)
	}
}

func TestProgressDetailNeedsVerbose(t *testing.T) {
	var quiet, loud bytes.Buffer

	NewProgress(&quiet, false, false).Detail("subdomain/crtsh: 17 names")
	NewProgress(&loud, true, false).Detail("subdomain/crtsh: 17 names")

	if quiet.Len() != 0 {
		t.Errorf("detail printed without verbose: %q", quiet.String())
	}
	if !strings.Contains(loud.String(), "subdomain/crtsh: 17 names") {
		t.Errorf("detail missing under verbose: %q", loud.String())
	}
}

func TestProgressSilentDropsEverything(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, true, true)

	p.Stage(1, 5, "Enumerating...")
	p.Detail("detail")
	p.Warn("warning")
	p.Complete()

	if buf.Len() != 0 {
		t.Errorf("silent reporter wrote output: %q", buf.String())
	}
}
