package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/skywatch/stargazer/app/catalog"
)

var (
	messierPattern = regexp.MustCompile(`(?i)\b(?:M|Messier)\s*(\d{1,3})\b`)
	ngcPattern     = regexp.MustCompile(`(?i)\bNGC\s*(\d{1,4})\b`)
	icPattern      = regexp.MustCompile(`(?i)\bIC\s*(\d{1,4})\b`)
)

// Extractor scans free text (article bodies, video descriptions) for
// celestial object designators and enriches the hits from the catalog tables.
type Extractor struct {
	planetPatterns map[string]*regexp.Regexp
}

func NewExtractor() *Extractor {
	planetPatterns := make(map[string]*regexp.Regexp)
	for _, planet := range catalog.Planets() {
		planetPatterns[planet.Name] = regexp.MustCompile(`(?i)\b` + planet.Name + `\b`)
	}
	return &Extractor{planetPatterns: planetPatterns}
}

// Run extracts every recognized object from text, at most once per name
// (case-insensitive). The month is used only to decorate generic
// descriptions. Scanning is layered: Messier numbers, NGC numbers, IC
// numbers, planets, then well-known proper names. All layers share one
// found-name set, so a name emitted by an earlier layer is never emitted
// again by a later one. Empty or non-matching text yields an empty list.
func (e *Extractor) Run(text, month string) []Object {
	found := make(map[string]bool)
	objects := []Object{}

	emit := func(obj Object) {
		key := strings.ToLower(obj.Name)
		if found[key] {
			return
		}
		found[key] = true
		objects = append(objects, obj)
	}

	for _, match := range messierPattern.FindAllStringSubmatch(text, -1) {
		number, err := strconv.Atoi(match[1])
		if err != nil || number == 0 {
			continue
		}
		emit(e.messierObject(number))
	}

	for _, match := range ngcPattern.FindAllStringSubmatch(text, -1) {
		number := strings.TrimLeft(match[1], "0")
		if number == "" {
			continue
		}
		name := "NGC " + number
		emit(Object{
			Name:        name,
			Type:        "galaxy",
			Description: fmt.Sprintf("New General Catalogue object %s, a deep-sky target visible in %s.", name, month),
		})
	}

	for _, match := range icPattern.FindAllStringSubmatch(text, -1) {
		number := strings.TrimLeft(match[1], "0")
		if number == "" {
			continue
		}
		name := "IC " + number
		emit(Object{
			Name:        name,
			Type:        "nebula",
			Description: fmt.Sprintf("Index Catalogue object %s, a faint deep-sky target visible in %s.", name, month),
		})
	}

	for _, planet := range catalog.Planets() {
		if !e.planetPatterns[planet.Name].MatchString(text) {
			continue
		}
		description := planet.Description
		if strings.Contains(description, "%s") {
			description = fmt.Sprintf(description, month)
		}
		emit(Object{
			Name:        planet.Name,
			Type:        "planet",
			Description: description,
			Magnitude:   planet.Magnitude,
		})
	}

	lowerText := strings.ToLower(text)
	for _, named := range catalog.NamedObjects() {
		if !strings.Contains(lowerText, strings.ToLower(named.Name)) {
			continue
		}
		// The designator layers may already have produced this object under
		// its catalog number; the cross-reference blocks the duplicate.
		if found[strings.ToLower(named.Designation)] {
			continue
		}
		found[strings.ToLower(named.Designation)] = true
		emit(Object{
			Name:          named.Name,
			Type:          named.Type,
			Description:   named.Description,
			Constellation: named.Constellation,
			Magnitude:     named.Magnitude,
		})
	}

	return objects
}

func (e *Extractor) messierObject(number int) Object {
	name := "M" + strconv.Itoa(number)

	if entry, ok := catalog.Messier(number); ok {
		return Object{
			Name:          name,
			Type:          entry.Type,
			Description:   entry.Description,
			Constellation: entry.Constellation,
			Magnitude:     entry.Magnitude,
		}
	}

	objectType := catalog.MessierType(number)
	return Object{
		Name:        name,
		Type:        objectType,
		Description: fmt.Sprintf("Messier object %s, a %s from Charles Messier's catalog.", name, strings.ReplaceAll(objectType, "_", " ")),
	}
}
