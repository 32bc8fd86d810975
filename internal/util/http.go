package util

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes caps how much GetBytes will read from one response.
const MaxBodyBytes = 32 << 20

// GetBytes fetches url and returns the body of a 200 response. Bodies larger
// than MaxBodyBytes are rejected.
func GetBytes(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	return getBytesLimit(ctx, client, url, MaxBodyBytes)
}

func getBytesLimit(ctx context.Context, client *http.Client, url string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("GET %s: body exceeds %d bytes", url, limit)
	}
	return body, nil
}
