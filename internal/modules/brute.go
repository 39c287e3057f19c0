package modules

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/strixsec/strix/internal/pool"
	"github.com/strixsec/strix/internal/wordlist"
)

const (
	bruteDefaultConcurrency = 50
	bruteLookupTimeout      = 5 * time.Second
)

// Brute enumerates subdomains by resolving <word>.<domain> for every word
// in the embedded wordlist. Only names with at least one DNS answer are
// returned.
type Brute struct {
	// Concurrency caps simultaneous lookups; zero means the default.
	Concurrency int

	// lookup is swapped out in tests.
	lookup func(ctx context.Context, host string) ([]string, error)
}

func NewBrute(concurrency int) *Brute {
	return &Brute{Concurrency: concurrency}
}

func (b *Brute) Name() string { return "subdomain/brute" }

func (b *Brute) Description() string {
	return "Enumerate subdomains by brute-forcing common labels over DNS"
}

func (b *Brute) Enumerate(ctx context.Context, domain string) ([]string, error) {
	words := wordlist.Subdomains()
	if len(words) == 0 {
		return nil, fmt.Errorf("empty subdomain wordlist")
	}

	limit := b.Concurrency
	if limit <= 0 {
		limit = bruteDefaultConcurrency
	}
	lookup := b.lookup
	if lookup == nil {
		lookup = net.DefaultResolver.LookupHost
	}

	hosts := pool.Map(ctx, words, limit, func(ctx context.Context, word string) (string, bool) {
		candidate := word + "." + domain
		lctx, cancel := context.WithTimeout(ctx, bruteLookupTimeout)
		defer cancel()

		addrs, err := lookup(lctx, candidate)
		if err != nil || len(addrs) == 0 {
			return "", false
		}
		return candidate, true
	})

	return hosts, nil
}
