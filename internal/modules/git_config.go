package modules

import (
	"context"
	"net/http"
	"regexp"
)

var gitConfigPattern = regexp.MustCompile(`\[branch\s+"[^"]+"\]`)

// GitConfigLeakage checks whether the endpoint exposes /.git/config.
type GitConfigLeakage struct{}

func NewGitConfigLeakage() *GitConfigLeakage { return &GitConfigLeakage{} }

func (g *GitConfigLeakage) Name() string { return "http/git_config_leakage" }

func (g *GitConfigLeakage) Description() string {
	return "Check if .git/config is publicly accessible"
}

func (g *GitConfigLeakage) Scan(ctx context.Context, client *http.Client, endpoint string) (*Finding, error) {
	return scanSchemes(ctx, client, endpoint, "/.git/config", func(url string, _ *http.Response, body []byte) *Finding {
		if !gitConfigPattern.Match(body) {
			return nil
		}
		return &Finding{Kind: KindGitConfigLeakage, Module: g.Name(), URL: url}
	})
}
