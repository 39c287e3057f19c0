package modules

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
)

// checkMaxBody caps how much of a response body a check will read.
const checkMaxBody = 1 << 20

// checkFunc inspects one successful (2xx) response and returns a Finding
// on a positive match, nil otherwise.
type checkFunc func(url string, resp *http.Response, body []byte) *Finding

// scanSchemes drives one HTTP check: it requests scheme://endpoint/path
// for https then http, hands each 2xx response to check, and stops at the
// first positive match. If neither scheme produced any response at all,
// the last transport error is returned so the caller can debug-log it.
func scanSchemes(ctx context.Context, client *http.Client, endpoint, path string, check checkFunc) (*Finding, error) {
	var lastErr error
	responded := false

	for _, scheme := range []string{"https", "http"} {
		url := fmt.Sprintf("%s://%s%s", scheme, endpoint, path)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			lastErr = err
			continue
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		responded = true

		body, _ := io.ReadAll(io.LimitReader(resp.Body, checkMaxBody))
		resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			continue
		}
		if f := check(url, resp, body); f != nil {
			return f, nil
		}
	}

	if !responded && lastErr != nil {
		return nil, lastErr
	}
	return nil, nil
}

// matchAny reports whether any pattern in the set matches the body.
func matchAny(patterns []*regexp.Regexp, body []byte) bool {
	for _, re := range patterns {
		if re.Match(body) {
			return true
		}
	}
	return false
}
