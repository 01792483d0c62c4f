package images

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/skywatch/stargazer/app/catalog"
)

const (
	defaultNasaSearchURL = "https://images-api.nasa.gov/search"
	defaultNasaAssetURL  = "https://images-api.nasa.gov/asset"
	defaultWikiURL       = "https://en.wikipedia.org/w/api.php"

	// Thumbnail size requested from the secondary provider
	wikiThumbSize = 1024

	noImageMessage = "No suitable image found"
)

var (
	messierShorthand = regexp.MustCompile(`(?i)^(?:M|Messier)\s*(\d{1,3})$`)
	catalogShorthand = regexp.MustCompile(`(?i)^(?:NGC|IC)\s*\d{1,4}$`)

	imageExtensions = []string{".jpg", ".jpeg", ".png"}
	hiResMarkers    = []string{"large", "1024", "2048"}
)

// Resolver finds a representative image URL for a named celestial object. It
// tries an ordered list of query variants against the NASA Image and Video
// Library, then against Wikipedia, and reports exhaustion as an empty outcome.
// Resolution is a pure query: nothing in the caller's state is mutated.
type Resolver struct {
	http *retryClient

	nasaSearchURL string
	nasaAssetURL  string
	wikiURL       string
}

func NewResolver(client *http.Client, userAgent string) *Resolver {
	return &Resolver{
		http:          newRetryClient(client, userAgent),
		nasaSearchURL: defaultNasaSearchURL,
		nasaAssetURL:  defaultNasaAssetURL,
		wikiURL:       defaultWikiURL,
	}
}

// Resolve returns at most one image URL for the object, with provenance.
func (r *Resolver) Resolve(ctx context.Context, objectName string) Result {
	queries := expandQueries(objectName)

	for _, query := range queries {
		imageURL, metadata := r.searchPrimary(ctx, query)
		if imageURL != "" {
			slog.Debug("Image resolved", "object", objectName, "query", query, "source", SourcePrimary)
			return Result{
				Success:    true,
				ObjectName: objectName,
				ImageURL:   imageURL,
				Source:     SourcePrimary,
				Metadata:   metadata,
			}
		}
	}

	for _, query := range queries {
		imageURL := r.searchSecondary(ctx, query)
		if imageURL != "" {
			slog.Debug("Image resolved", "object", objectName, "query", query, "source", SourceSecondary)
			return Result{
				Success:    true,
				ObjectName: objectName,
				ImageURL:   imageURL,
				Source:     SourceSecondary,
			}
		}
	}

	return Result{
		Success:    false,
		ObjectName: objectName,
		Error:      noImageMessage,
	}
}

// ResolvePreview behaves exactly like Resolve. It exists so callers building
// a preview can state that no stored record is touched; neither variant
// performs any write.
func (r *Resolver) ResolvePreview(ctx context.Context, objectName string) Result {
	return r.Resolve(ctx, objectName)
}

// expandQueries produces the ordered search phrasings for an object name.
// Messier shorthands try the well-known proper name first, then the literal
// "Messier N" phrasing. NGC/IC shorthands are broadened with descriptive
// class words to improve provider recall. Anything else searches as-is.
func expandQueries(objectName string) []string {
	trimmed := strings.TrimSpace(objectName)

	if match := messierShorthand.FindStringSubmatch(trimmed); match != nil {
		number, err := strconv.Atoi(match[1])
		if err == nil && number > 0 {
			var queries []string
			if common, ok := catalog.MessierCommonName(number); ok {
				queries = append(queries, common)
			}
			queries = append(queries, fmt.Sprintf("Messier %d", number))
			if len(queries) == 0 {
				queries = append(queries, trimmed)
			}
			return queries
		}
	}

	if catalogShorthand.MatchString(trimmed) {
		return []string{trimmed + " nebula galaxy"}
	}

	return []string{trimmed}
}

// searchPrimary runs one query against the NASA Image and Video Library and
// returns the best image URL it can find, or "" when the query is exhausted.
func (r *Resolver) searchPrimary(ctx context.Context, query string) (string, *Metadata) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("media_type", "image")
	params.Set("page", "1")
	params.Set("page_size", "3")

	var search nasaSearchResponse
	if err := r.http.getJSON(ctx, r.nasaSearchURL, params, &search); err != nil {
		slog.Debug("Primary provider search exhausted", "query", query, "error", err)
		return "", nil
	}

	items := search.Collection.Items
	if len(items) == 0 || len(items[0].Data) == 0 {
		return "", nil
	}

	first := items[0]
	data := first.Data[0]
	metadata := &Metadata{
		Title:       data.Title,
		Description: data.Description,
		DateCreated: data.DateCreated,
		Center:      data.Center,
		NasaID:      data.NasaID,
	}

	var manifest nasaAssetResponse
	err := r.http.getJSON(ctx, r.nasaAssetURL+"/"+url.PathEscape(data.NasaID), nil, &manifest)
	if err == nil {
		if best := bestAssetURL(manifest); best != "" {
			return best, metadata
		}
	}

	// No usable asset manifest; fall back to the search item's own preview link
	for _, link := range first.Links {
		if link.Rel == "preview" && link.Href != "" {
			return link.Href, metadata
		}
	}

	return "", nil
}

// bestAssetURL picks a URL from an asset manifest: the first image asset
// whose path carries a high-resolution marker wins immediately; otherwise the
// first image asset seen is kept, and scanning continues only in case a
// marked one appears later. The first-found candidate is never replaced by a
// later unmarked asset.
func bestAssetURL(manifest nasaAssetResponse) string {
	candidate := ""
	for _, item := range manifest.Collection.Items {
		href := item.Href
		if !isImageAsset(href) {
			continue
		}
		if hasHiResMarker(href) {
			return href
		}
		if candidate == "" {
			candidate = href
		}
	}
	return candidate
}

func isImageAsset(href string) bool {
	lower := strings.ToLower(href)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func hasHiResMarker(href string) bool {
	lower := strings.ToLower(href)
	for _, marker := range hiResMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// searchSecondary asks Wikipedia for the page image of a title, at a fixed
// thumbnail size. Returns "" when the page has no usable thumbnail.
func (r *Resolver) searchSecondary(ctx context.Context, query string) string {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("titles", query)
	params.Set("prop", "pageimages")
	params.Set("format", "json")
	params.Set("redirects", "1")
	params.Set("pithumbsize", strconv.Itoa(wikiThumbSize))

	var response wikiQueryResponse
	if err := r.http.getJSON(ctx, r.wikiURL, params, &response); err != nil {
		slog.Debug("Secondary provider lookup exhausted", "query", query, "error", err)
		return ""
	}

	for _, page := range response.Query.Pages {
		if page.Thumbnail != nil && page.Thumbnail.Source != "" {
			return page.Thumbnail.Source
		}
	}

	return ""
}
