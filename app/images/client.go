package images

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const maxAttempts = 3

// retryClient wraps an http.Client with the bounded retry and exponential
// backoff applied to every individual provider request: up to 3 attempts, a
// non-2xx status or transport failure is retried, and the delay before retry
// k (0-indexed) is 2^k backoff units. The unit is one second in production;
// tests shrink it.
type retryClient struct {
	client      *http.Client
	userAgent   string
	backoffUnit time.Duration
}

func newRetryClient(client *http.Client, userAgent string) *retryClient {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &retryClient{
		client:      client,
		userAgent:   userAgent,
		backoffUnit: time.Second,
	}
}

// getJSON issues a GET with retries and decodes the response body into out.
// After the final failed attempt it returns the last error; callers treat
// that as an absence signal for the query in hand, not a fatal condition.
func (c *retryClient) getJSON(ctx context.Context, rawURL string, params url.Values, out interface{}) error {
	requestURL := rawURL
	if len(params) > 0 {
		requestURL = rawURL + "?" + params.Encode()
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			delay := (1 << (attempt - 1)) * c.backoffUnit
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		data, err := c.get(ctx, requestURL)
		if err != nil {
			lastErr = err
			slog.Debug("Provider request failed", "url", rawURL, "attempt", attempt+1, "error", err)
			continue
		}

		if err := json.Unmarshal(data, out); err != nil {
			lastErr = fmt.Errorf("failed to decode response: %w", err)
			continue
		}

		return nil
	}

	return fmt.Errorf("all %d attempts failed: %w", maxAttempts, lastErr)
}

func (c *retryClient) get(ctx context.Context, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
