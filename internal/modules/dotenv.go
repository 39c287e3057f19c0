package modules

import (
	"context"
	"mime"
	"net/http"
)

// dotenvMaxSize rejects oversized /.env responses: real environment files
// are small, big bodies are almost always honeypots or soft-404 pages.
const dotenvMaxSize = 10_000

// DotEnvDisclosure checks whether the endpoint exposes its /.env file.
type DotEnvDisclosure struct{}

func NewDotEnvDisclosure() *DotEnvDisclosure { return &DotEnvDisclosure{} }

func (d *DotEnvDisclosure) Name() string { return "http/dotenv_disclosure" }

func (d *DotEnvDisclosure) Description() string {
	return "Check if .env is publicly accessible"
}

// Scan flags /.env as disclosed when the response is 2xx, its declared
// length does not exceed dotenvMaxSize (unknown length passes), and its
// media type is text/plain whenever a Content-Type header is present.
func (d *DotEnvDisclosure) Scan(ctx context.Context, client *http.Client, endpoint string) (*Finding, error) {
	return scanSchemes(ctx, client, endpoint, "/.env", func(url string, resp *http.Response, _ []byte) *Finding {
		if resp.ContentLength > dotenvMaxSize {
			return nil
		}
		if ct := resp.Header.Get("Content-Type"); ct != "" {
			mediaType, _, err := mime.ParseMediaType(ct)
			if err != nil || mediaType != "text/plain" {
				return nil
			}
		}
		return &Finding{Kind: KindDotEnvDisclosure, Module: d.Name(), URL: url}
	})
}
