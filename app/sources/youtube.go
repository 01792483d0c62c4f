package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/mmcdole/gofeed"

	"github.com/skywatch/stargazer/app/autopopulate"
)

const youtubeFeedURLFormat = "https://www.youtube.com/feeds/videos.xml?channel_id=%s"

var _ autopopulate.Source = (*YouTubeSource)(nil)

// YouTubeSource reads a channel's RSS feed and offers the newest video's
// title and description as extraction text, with the watch link as media
type YouTubeSource struct {
	name       string
	feedURL    string
	httpClient *http.Client
	parser     *gofeed.Parser
	userAgent  string
}

func NewYouTubeSource(name, channelID string, httpClient *http.Client, userAgent string) *YouTubeSource {
	return &YouTubeSource{
		name:       name,
		feedURL:    fmt.Sprintf(youtubeFeedURLFormat, channelID),
		httpClient: httpClient,
		parser:     gofeed.NewParser(),
		userAgent:  userAgent,
	}
}

func (s *YouTubeSource) Name() string {
	return s.name
}

func (s *YouTubeSource) Fetch(ctx context.Context, _ string, _ int) (*autopopulate.FetchResult, error) {
	data, err := s.fetchFeed(ctx)
	if err != nil {
		return nil, err
	}

	feed, err := s.parser.ParseString(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	newest := newestItem(feed.Items)
	if newest == nil {
		return nil, nil
	}

	return &autopopulate.FetchResult{
		Text:     newest.Title + "\n" + itemDescription(newest),
		MediaURL: newest.Link,
	}, nil
}

// itemDescription handles YouTube's Atom layout, where the description
// lives in the media:group extension rather than a summary element
func itemDescription(item *gofeed.Item) string {
	if item.Description != "" {
		return item.Description
	}
	for _, group := range item.Extensions["media"]["group"] {
		if descriptions, ok := group.Children["description"]; ok && len(descriptions) > 0 {
			return descriptions[0].Value
		}
	}
	return ""
}

func (s *YouTubeSource) fetchFeed(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching feed", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// newestItem prefers published timestamps; YouTube serves newest-first so
// the first item is the fallback
func newestItem(items []*gofeed.Item) *gofeed.Item {
	if len(items) == 0 {
		return nil
	}

	newest := items[0]
	for _, item := range items[1:] {
		if item.PublishedParsed != nil && newest.PublishedParsed != nil &&
			item.PublishedParsed.After(*newest.PublishedParsed) {
			newest = item
		}
	}
	return newest
}
