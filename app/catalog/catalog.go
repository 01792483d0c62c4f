package catalog

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// ObjectTypes lists the valid celestial object type values
var ObjectTypes = []string{"planet", "galaxy", "nebula", "star_cluster", "double_star", "moon", "other"}

var (
	messier      messierFile
	planets      planetsFile
	namedObjects namedObjectsFile
	seasonal     seasonalFile

	messierGalaxies map[int]bool
	messierNebulae  map[int]bool
	commonNames     map[int]string
)

// The catalog tables are part of the binary, so a malformed file is a build
// defect rather than a runtime condition.
func init() {
	mustLoad("data/messier.yaml", &messier)
	mustLoad("data/planets.yaml", &planets)
	mustLoad("data/named_objects.yaml", &namedObjects)
	mustLoad("data/seasonal.yaml", &seasonal)

	messierGalaxies = make(map[int]bool, len(messier.Galaxies))
	for _, n := range messier.Galaxies {
		messierGalaxies[n] = true
	}
	messierNebulae = make(map[int]bool, len(messier.Nebulae))
	for _, n := range messier.Nebulae {
		messierNebulae[n] = true
	}

	commonNames = make(map[int]string, len(namedObjects.Objects))
	for _, obj := range namedObjects.Objects {
		if n, ok := parseMessierDesignation(obj.Designation); ok {
			commonNames[n] = obj.Name
		}
	}
}

func mustLoad(path string, out interface{}) {
	data, err := dataFS.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("catalog: missing embedded data file %s: %v", path, err))
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		panic(fmt.Sprintf("catalog: invalid data file %s: %v", path, err))
	}
}

// Messier returns the curated entry for a Messier number, if present
func Messier(number int) (MessierEntry, bool) {
	entry, ok := messier.Objects[number]
	return entry, ok
}

// MessierType infers the object type for a Messier number absent from the
// curated table, using the fixed membership lists
func MessierType(number int) string {
	switch {
	case messierGalaxies[number]:
		return "galaxy"
	case messierNebulae[number]:
		return "nebula"
	default:
		return "star_cluster"
	}
}

// MessierCommonName returns the well-known proper name for a Messier number
// (e.g. 45 -> "Pleiades"), if one exists
func MessierCommonName(number int) (string, bool) {
	name, ok := commonNames[number]
	return name, ok
}

// Planets returns the seven planets in display order
func Planets() []Planet {
	return planets.Planets
}

// NamedObjects returns the curated well-known deep-sky objects
func NamedObjects() []NamedObject {
	return namedObjects.Objects
}

// SeasonalObjects returns the curated viewing picks for a month. Month
// comparison is case-insensitive; unknown months yield an empty list.
func SeasonalObjects(month string) []SeasonalObject {
	for m, objects := range seasonal.Months {
		if strings.EqualFold(m, month) {
			return objects
		}
	}
	return nil
}

func parseMessierDesignation(designation string) (int, bool) {
	var n int
	if _, err := fmt.Sscanf(designation, "M%d", &n); err != nil {
		return 0, false
	}
	return n, n > 0
}
