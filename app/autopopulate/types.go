package autopopulate

import (
	"context"

	"github.com/skywatch/stargazer/app/extract"
)

const (
	StatusFulfilled = "fulfilled"
	StatusRejected  = "rejected"
)

// SuggestedObject is a merged candidate for the user's object catalog,
// annotated with every provider that mentioned it
type SuggestedObject struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Description   string   `json:"description"`
	Constellation string   `json:"constellation,omitempty"`
	Magnitude     string   `json:"magnitude,omitempty"`
	ViewingTips   string   `json:"viewingTips,omitempty"`
	Difficulty    string   `json:"difficulty,omitempty"`
	Sources       []string `json:"sources"`
	ExistsInDB    bool     `json:"existsInDb"`
	DBID          int64    `json:"dbId,omitempty"`
}

// SourceOutcome records how one provider's fetch settled. A rejected
// outcome carries the failure message and an empty object list.
type SourceOutcome struct {
	Name     string            `json:"name"`
	Status   string            `json:"status"`
	Error    string            `json:"error,omitempty"`
	MediaURL string            `json:"mediaUrl,omitempty"`
	Objects  []SuggestedObject `json:"objects"`
}

// Preview is the assembled auto-populate suggestion for one month
type Preview struct {
	Month                string            `json:"month"`
	Year                 int               `json:"year"`
	Sources              []SourceOutcome   `json:"sources"`
	MergedObjects        []SuggestedObject `json:"mergedObjects"`
	SuggestedHeadline    string            `json:"suggestedHeadline"`
	SuggestedDescription string            `json:"suggestedDescription"`
	VideoURLs            []string          `json:"videoUrls"`
}

// FetchResult is what a provider returns for a month. Providers either
// supply pre-built objects (curated catalogs) or a free-text block to run
// through the extractor, optionally with a media link. A nil result means
// the provider has nothing for this month.
type FetchResult struct {
	Text     string
	MediaURL string
	Objects  []SuggestedObject
}

// Source is a provider of monthly viewing suggestions
type Source interface {
	Name() string
	Fetch(ctx context.Context, month string, year int) (*FetchResult, error)
}

func fromExtracted(obj extract.Object, provider string) SuggestedObject {
	return SuggestedObject{
		Name:          obj.Name,
		Type:          obj.Type,
		Description:   obj.Description,
		Constellation: obj.Constellation,
		Magnitude:     obj.Magnitude,
		Sources:       []string{provider},
	}
}
