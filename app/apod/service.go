package apod

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/skywatch/stargazer/app/database"
)

// Fetcher is the provider client used by the service
type Fetcher interface {
	Fetch(ctx context.Context, date string) (json.RawMessage, error)
}

var _ Fetcher = (*Client)(nil)

// Service serves picture-of-the-day payloads out of a date-keyed cache,
// hitting the provider only on a miss. When the provider is unreachable the
// most recent cached entry is served instead.
type Service struct {
	client Fetcher
	repo   database.ApodRepository
	loc    *time.Location
	now    func() time.Time
}

func NewService(client Fetcher, repo database.ApodRepository, loc *time.Location) *Service {
	return &Service{
		client: client,
		repo:   repo,
		loc:    loc,
		now:    time.Now,
	}
}

// Get returns the payload for the given date (YYYY-MM-DD), defaulting to
// today. Stale reads are acceptable here; the refresh task keeps today's
// entry current.
func (s *Service) Get(ctx context.Context, date string) (json.RawMessage, error) {
	if date == "" {
		date = s.now().In(s.loc).Format("2006-01-02")
	}

	cached, err := s.repo.GetEntry(date)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}
	if cached != nil {
		return json.RawMessage(cached.Payload), nil
	}

	return s.Refresh(ctx, date)
}

// Refresh fetches the given date from the provider and caches the result,
// bypassing any existing cache entry. On provider failure it falls back to
// the most recent cached entry of any date.
func (s *Service) Refresh(ctx context.Context, date string) (json.RawMessage, error) {
	if date == "" {
		date = s.now().In(s.loc).Format("2006-01-02")
	}

	payload, err := s.client.Fetch(ctx, date)
	if err != nil {
		latest, cacheErr := s.repo.GetLatestEntry()
		if cacheErr == nil && latest != nil {
			slog.Warn("APOD fetch failed, serving latest cached entry",
				"date", date, "cached_date", latest.Date, "error", err.Error())
			return json.RawMessage(latest.Payload), nil
		}
		return nil, err
	}

	if err := s.repo.UpsertEntry(date, string(payload)); err != nil {
		slog.Warn("Failed to cache APOD entry", "date", date, "error", err.Error())
	}
	return payload, nil
}

// ErrorResponse maps a fetch error to the HTTP status and message the API
// returns for it
func ErrorResponse(err error) (int, string) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Code {
		case http.StatusBadRequest:
			return http.StatusBadRequest, "Invalid request parameters. Please check your date format (YYYY-MM-DD)."
		case http.StatusNotFound:
			return http.StatusNotFound, "No APOD data found for the specified date. Please try a different date."
		case http.StatusTooManyRequests:
			return http.StatusTooManyRequests, "NASA API rate limit exceeded. Please try again later or use a personal API key."
		default:
			return statusErr.Code, fmt.Sprintf("NASA API error: %s", err)
		}
	}

	var timeoutErr interface{ Timeout() bool }
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &timeoutErr) && timeoutErr.Timeout()) {
		return http.StatusGatewayTimeout, "NASA API request timed out. Please try again later."
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return http.StatusServiceUnavailable, "Unable to connect to NASA API. Please check your internet connection and try again."
	}

	return http.StatusInternalServerError, fmt.Sprintf("Failed to fetch APOD: %s", err)
}
