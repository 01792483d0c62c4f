package sources

import (
	"context"

	"github.com/skywatch/stargazer/app/autopopulate"
	"github.com/skywatch/stargazer/app/catalog"
)

const catalogSourceName = "Seasonal Catalog"

var _ autopopulate.Source = (*CatalogSource)(nil)

// CatalogSource serves the curated monthly picks bundled with the binary.
// It is pure with respect to the month argument and cannot fail.
type CatalogSource struct{}

func NewCatalogSource() *CatalogSource {
	return &CatalogSource{}
}

func (s *CatalogSource) Name() string {
	return catalogSourceName
}

func (s *CatalogSource) Fetch(_ context.Context, month string, _ int) (*autopopulate.FetchResult, error) {
	picks := catalog.SeasonalObjects(month)
	if len(picks) == 0 {
		return nil, nil
	}

	objects := make([]autopopulate.SuggestedObject, 0, len(picks))
	for _, pick := range picks {
		objects = append(objects, autopopulate.SuggestedObject{
			Name:          pick.Name,
			Type:          pick.Type,
			Description:   pick.Description,
			Constellation: pick.Constellation,
			Magnitude:     pick.Magnitude,
			ViewingTips:   pick.ViewingTips,
			Difficulty:    pick.Difficulty,
			Sources:       []string{catalogSourceName},
		})
	}

	return &autopopulate.FetchResult{Objects: objects}, nil
}
