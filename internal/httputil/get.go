// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP request helper used by the fetcher.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrStatus is wrapped by Get when the server answers with anything but 200.
var ErrStatus = errors.New("unexpected HTTP status")

// Get issues a GET for url with the given User-Agent header and returns the
// response only when the status is 200 OK. For any other status the body is
// drained and closed and the returned error wraps ErrStatus. Get never retries.
func Get(ctx context.Context, client *http.Client, url, userAgent string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("%w: HTTP %d from %s", ErrStatus, resp.StatusCode, url)
	}
	return resp, nil
}
