package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

const defaultMaxBodyBytes = 4 << 20

// RestGet issues a size-capped JSON GET and returns the raw response body.
func RestGet(ctx context.Context, httpClient *http.Client, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("accept", "application/json")
	return doRest(httpClient, req)
}

// RestPost issues a size-capped JSON POST and returns the raw response body.
func RestPost(ctx context.Context, httpClient *http.Client, url string, body []byte) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("content-type", "application/json")
	req.Header.Set("accept", "application/json")
	return doRest(httpClient, req)
}

func doRest(httpClient *http.Client, req *http.Request) ([]byte, int, error) {
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, defaultMaxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return respBody, resp.StatusCode, nil
}
