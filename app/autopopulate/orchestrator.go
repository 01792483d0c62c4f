package autopopulate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/skywatch/stargazer/app/database"
	"github.com/skywatch/stargazer/app/extract"
)

// ObjectLookup is the read-only store access used for the existence check
type ObjectLookup interface {
	GetObjectByName(name string) (*database.CelestialObject, error)
}

// Orchestrator fans out to all suggestion providers for a month, merges
// their object lists into one canonical list and annotates each entry with
// whether it is already in the user's catalog
type Orchestrator struct {
	sources   []Source
	extractor *extract.Extractor
	lookup    ObjectLookup
}

func NewOrchestrator(sources []Source, extractor *extract.Extractor, lookup ObjectLookup) *Orchestrator {
	return &Orchestrator{
		sources:   sources,
		extractor: extractor,
		lookup:    lookup,
	}
}

// BuildPreview never fails: provider errors become rejected outcomes and
// the worst case is a preview with an empty merged list
func (o *Orchestrator) BuildPreview(ctx context.Context, month string, year int) *Preview {
	outcomes := make([]SourceOutcome, len(o.sources))

	var wg sync.WaitGroup
	for i, source := range o.sources {
		wg.Add(1)
		go func(i int, source Source) {
			defer wg.Done()
			outcomes[i] = o.fetchOutcome(ctx, source, month, year)
		}(i, source)
	}
	wg.Wait()

	var videoURLs []string
	for _, outcome := range outcomes {
		if outcome.MediaURL != "" {
			videoURLs = append(videoURLs, outcome.MediaURL)
		}
	}

	merged := mergeObjects(outcomes)
	o.markExisting(merged)

	return &Preview{
		Month:                month,
		Year:                 year,
		Sources:              outcomes,
		MergedObjects:        merged,
		SuggestedHeadline:    fmt.Sprintf("%s %d Viewing Guide", month, year),
		SuggestedDescription: buildDescription(month, year, merged, len(videoURLs)),
		VideoURLs:            videoURLs,
	}
}

func (o *Orchestrator) fetchOutcome(ctx context.Context, source Source, month string, year int) SourceOutcome {
	outcome := SourceOutcome{
		Name:    source.Name(),
		Status:  StatusFulfilled,
		Objects: []SuggestedObject{},
	}

	result, err := source.Fetch(ctx, month, year)
	if err != nil {
		slog.Warn("Suggestion source failed", "source", source.Name(), "error", err.Error())
		outcome.Status = StatusRejected
		outcome.Error = err.Error()
		return outcome
	}
	if result == nil {
		return outcome
	}

	outcome.MediaURL = result.MediaURL

	if len(result.Objects) > 0 {
		outcome.Objects = result.Objects
		return outcome
	}

	for _, obj := range o.extractor.Run(result.Text, month) {
		outcome.Objects = append(outcome.Objects, fromExtracted(obj, source.Name()))
	}
	return outcome
}

// mergeObjects deduplicates across providers by case-insensitive name, in
// provider order. The first sighting wins the slot; later sightings append
// their provider, fill blank fields and may replace the description when
// theirs is strictly longer.
func mergeObjects(outcomes []SourceOutcome) []SuggestedObject {
	var merged []SuggestedObject
	index := map[string]int{}

	for _, outcome := range outcomes {
		for _, obj := range outcome.Objects {
			key := strings.ToLower(obj.Name)
			at, seen := index[key]
			if !seen {
				index[key] = len(merged)
				merged = append(merged, obj)
				continue
			}

			existing := &merged[at]
			for _, provider := range obj.Sources {
				if !containsString(existing.Sources, provider) {
					existing.Sources = append(existing.Sources, provider)
				}
			}
			if existing.ViewingTips == "" && obj.ViewingTips != "" {
				existing.ViewingTips = obj.ViewingTips
			}
			if existing.Difficulty == "" && obj.Difficulty != "" {
				existing.Difficulty = obj.Difficulty
			}
			if len(obj.Description) > len(existing.Description) {
				existing.Description = obj.Description
			}
			if existing.Constellation == "" {
				existing.Constellation = obj.Constellation
			}
			if existing.Magnitude == "" {
				existing.Magnitude = obj.Magnitude
			}
		}
	}
	return merged
}

// markExisting looks each merged object up by name. Lookup errors are
// treated as "not in the catalog" so a store hiccup cannot sink the preview.
func (o *Orchestrator) markExisting(merged []SuggestedObject) {
	for i := range merged {
		existing, err := o.lookup.GetObjectByName(merged[i].Name)
		if err != nil {
			slog.Warn("Existence lookup failed", "object", merged[i].Name, "error", err.Error())
			continue
		}
		if existing != nil {
			merged[i].ExistsInDB = true
			merged[i].DBID = existing.ID
		}
	}
}

func buildDescription(month string, year int, merged []SuggestedObject, videoCount int) string {
	if len(merged) == 0 {
		return fmt.Sprintf("No viewing targets were found for %s %d.", month, year)
	}

	var types []string
	for _, obj := range merged {
		if obj.Type != "" && !containsString(types, obj.Type) {
			types = append(types, obj.Type)
		}
	}

	description := fmt.Sprintf("%d suggested viewing targets for %s %d", len(merged), month, year)
	if len(types) > 0 {
		description += fmt.Sprintf(", covering %s", strings.Join(types, ", "))
	}
	description += "."
	if videoCount == 1 {
		description += " Includes 1 companion video."
	} else if videoCount > 1 {
		description += fmt.Sprintf(" Includes %d companion videos.", videoCount)
	}
	return description
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
