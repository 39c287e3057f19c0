package modules

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// fetchSpec describes one source API request.
type fetchSpec struct {
	url        string
	userAgent  string
	accept     string
	timeout    time.Duration
	maxBody    int64
	retryDelay time.Duration
}

// fetch performs a GET with one retry after retryDelay. Rate-limit
// responses are never retried; a 429 from a source stays a 429.
func fetch(ctx context.Context, spec fetchSpec) ([]byte, error) {
	body, err := fetchOnce(ctx, spec)
	if err == nil {
		return body, nil
	}
	if strings.Contains(err.Error(), "429") {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(spec.retryDelay):
	}

	return fetchOnce(ctx, spec)
}

func fetchOnce(ctx context.Context, spec fetchSpec) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, spec.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, spec.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", spec.userAgent)
	if spec.accept != "" {
		req.Header.Set("Accept", spec.accept)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("rate limited (429)")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, spec.maxBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
