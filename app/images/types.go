package images

const (
	SourcePrimary   = "primary"   // NASA Image and Video Library
	SourceSecondary = "secondary" // Wikipedia page image
)

// Result is the outcome of one image resolution call. Exhausting every query
// variant and both providers is reported as data (Success false with a fixed
// message), never as an error.
type Result struct {
	Success    bool      `json:"success"`
	ObjectName string    `json:"object_name"`
	ImageURL   string    `json:"image_url,omitempty"`
	Error      string    `json:"error,omitempty"`
	Source     string    `json:"source,omitempty"`
	Metadata   *Metadata `json:"metadata,omitempty"`
}

// Metadata carries descriptive fields from the primary provider's top search hit
type Metadata struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	DateCreated string `json:"date_created,omitempty"`
	Center      string `json:"center,omitempty"`
	NasaID      string `json:"nasa_id,omitempty"`
}

// Provider responses are decoded into explicit shapes at the boundary and
// never handed around as untyped data.

type nasaSearchResponse struct {
	Collection struct {
		Items []nasaSearchItem `json:"items"`
	} `json:"collection"`
}

type nasaSearchItem struct {
	Data  []nasaItemData `json:"data"`
	Links []nasaItemLink `json:"links"`
}

type nasaItemData struct {
	NasaID      string `json:"nasa_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DateCreated string `json:"date_created"`
	Center      string `json:"center"`
}

type nasaItemLink struct {
	Href string `json:"href"`
	Rel  string `json:"rel"`
}

type nasaAssetResponse struct {
	Collection struct {
		Items []struct {
			Href string `json:"href"`
		} `json:"items"`
	} `json:"collection"`
}

type wikiQueryResponse struct {
	Query struct {
		Pages map[string]struct {
			Title     string `json:"title"`
			Thumbnail *struct {
				Source string `json:"source"`
				Width  int    `json:"width"`
				Height int    `json:"height"`
			} `json:"thumbnail"`
		} `json:"pages"`
	} `json:"query"`
}
