package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-shiori/go-readability"

	"github.com/skywatch/stargazer/app/autopopulate"
)

var _ autopopulate.Source = (*ArticleSource)(nil)

// ArticleSource fetches a sky-guide web page and feeds its readable text
// through the extractor. It carries no media reference.
type ArticleSource struct {
	name       string
	url        string
	httpClient *http.Client
	userAgent  string
}

func NewArticleSource(name, url string, httpClient *http.Client, userAgent string) *ArticleSource {
	return &ArticleSource{
		name:       name,
		url:        url,
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

func (s *ArticleSource) Name() string {
	return s.name
}

func (s *ArticleSource) Fetch(ctx context.Context, _ string, _ int) (*autopopulate.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching article", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read article: %w", err)
	}

	article, err := readability.FromReader(strings.NewReader(string(data)), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to extract content: %w", err)
	}

	if article.TextContent == "" {
		return nil, nil
	}

	return &autopopulate.FetchResult{Text: article.TextContent}, nil
}
