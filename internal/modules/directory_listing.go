package modules

import (
	"context"
	"net/http"
	"regexp"
)

// directoryListingPatterns recognize index pages across common servers.
// A malformed pattern is a programming error and fails at startup.
var directoryListingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Index of /`),                                      // Apache / nginx
	regexp.MustCompile(`(?i)directory listing - /`),                           // Microsoft IIS
	regexp.MustCompile(`(?i)Directory Listing For /`),                         // Apache Tomcat
	regexp.MustCompile(`(?i)Parent Directory`),                                // generic HTML link
	regexp.MustCompile(`(?i)<A HREF=["']?/[^>]*>\[To Parent Directory\]</A>`), // old IIS
}

// DirectoryListing checks whether the endpoint serves a browsable
// directory index at its document root.
type DirectoryListing struct{}

func NewDirectoryListing() *DirectoryListing { return &DirectoryListing{} }

func (d *DirectoryListing) Name() string { return "http/directory_listing" }

func (d *DirectoryListing) Description() string {
	return "Check if directory listing is publicly accessible"
}

func (d *DirectoryListing) Scan(ctx context.Context, client *http.Client, endpoint string) (*Finding, error) {
	return scanSchemes(ctx, client, endpoint, "/", func(url string, _ *http.Response, body []byte) *Finding {
		if !matchAny(directoryListingPatterns, body) {
			return nil
		}
		return &Finding{Kind: KindDirectoryListing, Module: d.Name(), URL: url}
	})
}
