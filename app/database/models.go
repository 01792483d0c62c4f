package database

import (
	"time"
)

// CelestialObject is a record in the user's observation-target catalog.
// Optional fields use the empty string for "not set".
type CelestialObject struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	Type                string    `json:"type"`
	Description         string    `json:"description"`
	Coordinates         string    `json:"coordinates"`
	Month               string    `json:"month,omitempty"`
	BestViewingTime     string    `json:"bestViewingTime,omitempty"`
	ImageURL            string    `json:"imageUrl,omitempty"`
	VisibilityRating    string    `json:"visibilityRating,omitempty"`
	Information         string    `json:"information,omitempty"`
	Constellation       string    `json:"constellation,omitempty"`
	Magnitude           string    `json:"magnitude,omitempty"`
	Hemisphere          string    `json:"hemisphere,omitempty"`
	RecommendedEyepiece string    `json:"recommendedEyepiece,omitempty"`
	CreatedAt           time.Time `json:"-"`
}

// Observation is one entry on a user's observing list
type Observation struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"userId"`
	ObjectID         int64     `json:"objectId"`
	DateAdded        time.Time `json:"dateAdded"`
	IsObserved       bool      `json:"isObserved"`
	ObservationNotes string    `json:"observationNotes,omitempty"`
	PlannedDate      string    `json:"plannedDate,omitempty"`
}

// MonthlyGuide is a curated viewing guide for one month/year/hemisphere
type MonthlyGuide struct {
	ID              int64   `json:"id"`
	Month           string  `json:"month"`
	Year            int     `json:"year"`
	Headline        string  `json:"headline"`
	Content         string  `json:"content"`
	Hemisphere      string  `json:"hemisphere"`
	FeaturedObjects []int64 `json:"featuredObjects"`
}

// TelescopeTip is a piece of equipment or observing advice
type TelescopeTip struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// ApodEntry is a cached Astronomy Picture of the Day response, stored as the
// provider's raw JSON payload keyed by date (YYYY-MM-DD)
type ApodEntry struct {
	Date      string
	Payload   string
	FetchedAt time.Time
}
