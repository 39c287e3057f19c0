package modules

import (
	"bytes"
	"context"
	"net/http"
	"regexp"
)

// gitHeadPatterns match the two shapes a .git/HEAD file takes: a symbolic
// ref, or a detached 40-hex commit hash.
var gitHeadPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^ref: refs/heads/`),
	regexp.MustCompile(`^[0-9a-f]{40}$`),
}

// GitHeadLeakage checks whether the endpoint exposes /.git/HEAD.
type GitHeadLeakage struct{}

func NewGitHeadLeakage() *GitHeadLeakage { return &GitHeadLeakage{} }

func (g *GitHeadLeakage) Name() string { return "http/git_head_leakage" }

func (g *GitHeadLeakage) Description() string {
	return "Check if .git/HEAD is publicly accessible"
}

func (g *GitHeadLeakage) Scan(ctx context.Context, client *http.Client, endpoint string) (*Finding, error) {
	return scanSchemes(ctx, client, endpoint, "/.git/HEAD", func(url string, _ *http.Response, body []byte) *Finding {
		if !matchAny(gitHeadPatterns, bytes.TrimSpace(body)) {
			return nil
		}
		return &Finding{Kind: KindGitHeadLeakage, Module: g.Name(), URL: url}
	})
}
