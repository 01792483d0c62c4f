package extract

// Object is a celestial object recognized in free text, enriched from the
// static catalog tables. Name is the canonical display form ("M42",
// "NGC 7000", "Jupiter") and is unique (case-insensitive) within one Run.
type Object struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Description   string `json:"description"`
	Constellation string `json:"constellation,omitempty"`
	Magnitude     string `json:"magnitude,omitempty"`
}
