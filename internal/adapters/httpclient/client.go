package httpclient

import (
	"context"
	"countrycache/internal/domain"
	"fmt"
	"net/http"
)

// get performs a GET and returns the response when the status is 2xx.
// Transport failures and other statuses are reported as ErrUpstreamUnavailable.
func get(ctx context.Context, client *http.Client, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", domain.ErrUpstreamUnavailable, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %w", domain.ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", domain.ErrUpstreamUnavailable, resp.StatusCode, resp.Status)
	}
	return resp, nil
}
