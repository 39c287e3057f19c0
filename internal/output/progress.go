// Package output handles all strix CLI output formatting.
package output

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Progress reports pipeline activity to stderr while results go to stdout.
// Silent mode drops everything; verbose mode adds per-module detail lines
// under each stage header.
type Progress struct {
	w       io.Writer
	verbose bool
	silent  bool

	mu       sync.Mutex
	start    time.Time
	warnings int
}

// NewProgress creates a progress reporter.
func NewProgress(w io.Writer, verbose, silent bool) *Progress {
	return &Progress{
		w:       w,
		verbose: verbose,
		silent:  silent,
		start:   time.Now(),
	}
}

// Stage prints a stage header like "[2/5] Resolving 41 subdomains..."
func (p *Progress) Stage(num, total int, msg string) {
	p.emit("[%d/%d] %s", num, total, msg)
}

// Detail prints an indented per-module line. Verbose mode only.
func (p *Progress) Detail(msg string) {
	if !p.verbose {
		return
	}
	p.emit("      %s", msg)
}

// Warn prints a warning and counts it toward the completion line.
func (p *Progress) Warn(msg string) {
	p.mu.Lock()
	p.warnings++
	p.mu.Unlock()
	p.emit("  warning: %s", msg)
}

// Complete prints the total duration and the warning count, if any.
func (p *Progress) Complete() {
	p.mu.Lock()
	elapsed := time.Since(p.start)
	warnings := p.warnings
	p.mu.Unlock()

	if warnings > 0 {
		p.emit("\nScan finished in %.1fs with %d warnings", elapsed.Seconds(), warnings)
		return
	}
	p.emit("\nScan finished in %.1fs", elapsed.Seconds())
}

func (p *Progress) emit(format string, args ...any) {
	if p.silent {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, format+"\n", args...)
}
