package catalog

// MessierEntry holds curated data for a Messier catalog number
type MessierEntry struct {
	Name          string `yaml:"name"`
	Type          string `yaml:"type"`
	Description   string `yaml:"description"`
	Constellation string `yaml:"constellation"`
	Magnitude     string `yaml:"magnitude"`
}

// Planet holds static viewing data for one of the seven telescope planets.
// Description may contain a single %s verb filled with the month name.
type Planet struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Magnitude   string `yaml:"magnitude"`
}

// NamedObject is a well-known deep-sky object matched by its proper name.
// Designation is the Messier cross-reference (e.g. "M42").
type NamedObject struct {
	Name          string `yaml:"name"`
	Designation   string `yaml:"designation"`
	Type          string `yaml:"type"`
	Description   string `yaml:"description"`
	Constellation string `yaml:"constellation"`
	Magnitude     string `yaml:"magnitude"`
}

// SeasonalObject is a curated monthly viewing pick
type SeasonalObject struct {
	Name          string `yaml:"name"`
	Type          string `yaml:"type"`
	Description   string `yaml:"description"`
	Constellation string `yaml:"constellation"`
	Magnitude     string `yaml:"magnitude"`
	ViewingTips   string `yaml:"viewing_tips"`
	Difficulty    string `yaml:"difficulty"`
}

type messierFile struct {
	Objects  map[int]MessierEntry `yaml:"objects"`
	Galaxies []int                `yaml:"galaxies"`
	Nebulae  []int                `yaml:"nebulae"`
}

type planetsFile struct {
	Planets []Planet `yaml:"planets"`
}

type namedObjectsFile struct {
	Objects []NamedObject `yaml:"objects"`
}

type seasonalFile struct {
	Months map[string][]SeasonalObject `yaml:"months"`
}
