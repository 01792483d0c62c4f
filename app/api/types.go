package api

import (
	"context"
	"encoding/json"

	"github.com/skywatch/stargazer/app/apod"
	"github.com/skywatch/stargazer/app/autopopulate"
	"github.com/skywatch/stargazer/app/database"
	"github.com/skywatch/stargazer/app/images"
)

type PreviewBuilder interface {
	BuildPreview(ctx context.Context, month string, year int) *autopopulate.Preview
}

var _ PreviewBuilder = (*autopopulate.Orchestrator)(nil)

type ImageResolver interface {
	Resolve(ctx context.Context, objectName string) images.Result
	ResolvePreview(ctx context.Context, objectName string) images.Result
}

var _ ImageResolver = (*images.Resolver)(nil)

type ApodService interface {
	Get(ctx context.Context, date string) (json.RawMessage, error)
}

var _ ApodService = (*apod.Service)(nil)

type ApodRangeFetcher interface {
	FetchRange(ctx context.Context, startDate, endDate string) (json.RawMessage, error)
}

var _ ApodRangeFetcher = (*apod.Client)(nil)

type Handler struct {
	objectRepo      database.ObjectRepository
	observationRepo database.ObservationRepository
	guideRepo       database.GuideRepository
	tipRepo         database.TipRepository
	apodService     ApodService
	apodRange       ApodRangeFetcher
	resolver        ImageResolver
	previews        PreviewBuilder
}

type createObservationRequest struct {
	ObjectID         int64  `json:"objectId"`
	ObservationNotes string `json:"observationNotes"`
	PlannedDate      string `json:"plannedDate"`
}

type updateObservationRequest struct {
	IsObserved       *bool   `json:"isObserved"`
	ObservationNotes *string `json:"observationNotes"`
	PlannedDate      *string `json:"plannedDate"`
}

type observationResponse struct {
	database.Observation
	CelestialObject *database.CelestialObject `json:"celestialObject"`
}

type autoPopulateRequest struct {
	Month string `json:"month"`
	Year  int    `json:"year"`
}

type confirmRequest struct {
	Month   string                         `json:"month"`
	Objects []autopopulate.SuggestedObject `json:"objects"`
}
