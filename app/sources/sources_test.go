package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const youtubeFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:media="http://search.yahoo.com/mrss/">
  <title>Backyard Astronomy</title>
  <entry>
    <title>December 2025 Night Sky</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=old111"/>
    <published>2025-12-01T18:00:00+00:00</published>
    <media:group>
      <media:description>Last month we looked at M45.</media:description>
    </media:group>
  </entry>
  <entry>
    <title>January 2026 Night Sky</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=new222"/>
    <published>2026-01-02T18:00:00+00:00</published>
    <media:group>
      <media:description>M42 and Jupiter dominate the evening sky this month.</media:description>
    </media:group>
  </entry>
</feed>`

func TestCatalogSource(t *testing.T) {
	source := NewCatalogSource()

	result, err := source.Fetch(context.Background(), "January", 2026)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if result == nil || len(result.Objects) == 0 {
		t.Fatal("Fetch(January) returned no objects")
	}
	for _, obj := range result.Objects {
		if obj.ViewingTips == "" || obj.Difficulty == "" {
			t.Errorf("catalog object %q missing tips or difficulty", obj.Name)
		}
		if len(obj.Sources) != 1 || obj.Sources[0] != "Seasonal Catalog" {
			t.Errorf("catalog object %q sources = %v", obj.Name, obj.Sources)
		}
	}

	empty, err := source.Fetch(context.Background(), "Undecimber", 2026)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if empty != nil {
		t.Errorf("Fetch(unknown month) = %+v, want nil", empty)
	}
}

func TestYouTubeSourcePicksNewestEntry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "stargazer-test" {
			t.Errorf("User-Agent = %q", ua)
		}
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(youtubeFeedXML))
	}))
	defer server.Close()

	source := NewYouTubeSource("Backyard Astronomy", "UCtest", server.Client(), "stargazer-test")
	source.feedURL = server.URL

	result, err := source.Fetch(context.Background(), "January", 2026)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if result == nil {
		t.Fatal("Fetch() = nil, want the newest entry")
	}
	if result.MediaURL != "https://www.youtube.com/watch?v=new222" {
		t.Errorf("media url = %q, want the newer entry's link", result.MediaURL)
	}
	if !strings.Contains(result.Text, "January 2026 Night Sky") {
		t.Errorf("text %q missing the entry title", result.Text)
	}
	if !strings.Contains(result.Text, "M42 and Jupiter") {
		t.Errorf("text %q missing the media description", result.Text)
	}
}

func TestYouTubeSourceEmptyFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom"><title>Empty</title></feed>`))
	}))
	defer server.Close()

	source := NewYouTubeSource("Empty", "UCtest", server.Client(), "stargazer-test")
	source.feedURL = server.URL

	result, err := source.Fetch(context.Background(), "January", 2026)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if result != nil {
		t.Errorf("Fetch() = %+v, want nil for a feed with no entries", result)
	}
}

func TestYouTubeSourceTransportErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	source := NewYouTubeSource("Broken", "UCtest", server.Client(), "stargazer-test")
	source.feedURL = server.URL

	if _, err := source.Fetch(context.Background(), "January", 2026); err == nil {
		t.Fatal("Fetch() error = nil, want a transport error")
	}
}

func TestArticleSource(t *testing.T) {
	page := `<!DOCTYPE html><html><head><title>January Sky Guide</title></head>
<body><article><h1>January Sky Guide</h1>
<p>This month the Orion Nebula is at its best, and Jupiter blazes high in Taurus
after sunset. Binocular observers should also sweep up the Pleiades before it
sinks into the western twilight, and telescope owners can hunt down NGC 2244
inside the Rosette. Mars continues to shrink but remains worth a look at high
power on steady nights.</p></article></body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	source := NewArticleSource("Sky Guide", server.URL, server.Client(), "stargazer-test")

	result, err := source.Fetch(context.Background(), "January", 2026)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if result == nil {
		t.Fatal("Fetch() = nil, want extracted text")
	}
	if !strings.Contains(result.Text, "Orion Nebula") {
		t.Errorf("extracted text %q missing article content", result.Text)
	}
	if result.MediaURL != "" {
		t.Errorf("media url = %q, article source carries no media", result.MediaURL)
	}
}

func TestArticleSourceErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	source := NewArticleSource("Sky Guide", server.URL, server.Client(), "stargazer-test")

	if _, err := source.Fetch(context.Background(), "January", 2026); err == nil {
		t.Fatal("Fetch() error = nil, want an error for a 404 page")
	}
}
