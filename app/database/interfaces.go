package database

// ObservationUpdate carries the mutable fields of an observation for
// PATCH-style updates; nil fields are left unchanged
type ObservationUpdate struct {
	IsObserved       *bool
	ObservationNotes *string
	PlannedDate      *string
}

type ObjectRepository interface {
	GetAllObjects() ([]CelestialObject, error)
	GetObject(id int64) (*CelestialObject, error)
	// GetObjectByName matches the exact name case-insensitively and returns
	// nil when no record exists. It never writes.
	GetObjectByName(name string) (*CelestialObject, error)
	FilterObjects(objectType, month, hemisphere string) ([]CelestialObject, error)
	GetObjectsWithoutImage(limit int) ([]CelestialObject, error)
	GetObjectCount() (int, error)

	CreateObject(obj CelestialObject) (int64, error)
	UpdateObjectImage(id int64, imageURL string) error
}

type ObservationRepository interface {
	GetUserObservations(userID int64) ([]Observation, error)
	GetObservation(id int64) (*Observation, error)

	CreateObservation(obs Observation) (int64, error)
	UpdateObservation(id int64, update ObservationUpdate) (*Observation, error)
	DeleteObservation(id int64) error
}

type GuideRepository interface {
	GetAllGuides() ([]MonthlyGuide, error)
	// GetGuide matches month (case-insensitive) and year; a guide with
	// hemisphere "both" matches any requested hemisphere.
	GetGuide(month string, year int, hemisphere string) (*MonthlyGuide, error)
	GetGuideCount() (int, error)

	CreateGuide(guide MonthlyGuide) (int64, error)
}

type TipRepository interface {
	GetAllTips() ([]TelescopeTip, error)
	GetTipsByCategory(category string) ([]TelescopeTip, error)
	GetTipCount() (int, error)

	CreateTip(tip TelescopeTip) (int64, error)
}

type ApodRepository interface {
	GetEntry(date string) (*ApodEntry, error)
	GetLatestEntry() (*ApodEntry, error)

	UpsertEntry(date string, payload string) error
}
