package apod

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.nasa.gov/planetary/apod"

// StatusError is a non-2xx response from the picture-of-the-day API
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from APOD API", e.Code)
}

// Client fetches Astronomy Picture of the Day entries from NASA.
// The DEMO_KEY api key works but is limited to 30 requests per hour.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

func NewClient(apiKey string) *Client {
	return &Client{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
	}
}

// Fetch returns the raw payload for one date (YYYY-MM-DD), or for today
// when date is empty
func (c *Client) Fetch(ctx context.Context, date string) (json.RawMessage, error) {
	params := url.Values{"api_key": []string{c.apiKey}}
	if date != "" {
		params.Set("date", date)
	}
	return c.get(ctx, params)
}

// FetchRange returns the raw payload for an inclusive date range, which the
// provider serves as a JSON array
func (c *Client) FetchRange(ctx context.Context, startDate, endDate string) (json.RawMessage, error) {
	params := url.Values{
		"api_key":    []string{c.apiKey},
		"start_date": []string{startDate},
		"end_date":   []string{endDate},
	}
	return c.get(ctx, params)
}

func (c *Client) get(ctx context.Context, params url.Values) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("APOD request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read APOD response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	if !json.Valid(body) {
		return nil, errors.New("APOD API returned invalid JSON")
	}
	return json.RawMessage(body), nil
}
