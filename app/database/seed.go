package database

import (
	"fmt"
	"log/slog"
)

// Seed populates an empty database with a starter set of objects, guides
// and tips. Tables that already hold rows are left untouched.
func Seed(objects ObjectRepository, guides GuideRepository, tips TipRepository) error {
	if err := seedObjects(objects); err != nil {
		return err
	}
	if err := seedGuides(guides); err != nil {
		return err
	}
	return seedTips(tips)
}

func seedObjects(repo ObjectRepository) error {
	count, err := repo.GetObjectCount()
	if err != nil {
		return fmt.Errorf("failed to check object count: %w", err)
	}
	if count > 0 {
		return nil
	}

	seed := []CelestialObject{
		{
			Name:                "Jupiter",
			Type:                "planet",
			Description:         "The largest planet in the solar system, showing cloud bands and the four Galilean moons in any small telescope.",
			Coordinates:         "RA varies, Dec varies",
			BestViewingTime:     "Evening, near opposition",
			VisibilityRating:    "excellent",
			Information:         "Look for the Great Red Spot when it rotates into view. The moons change position from night to night.",
			Magnitude:           "-2.9 to -1.6",
			Hemisphere:          "both",
			RecommendedEyepiece: "10mm for cloud bands, 25mm for moons",
		},
		{
			Name:                "Saturn",
			Type:                "planet",
			Description:         "The ringed planet. The rings are visible in telescopes of 50mm aperture and larger.",
			Coordinates:         "RA varies, Dec varies",
			BestViewingTime:     "Evening, near opposition",
			VisibilityRating:    "excellent",
			Information:         "The Cassini Division becomes visible around 150x magnification on steady nights.",
			Magnitude:           "0.2 to 0.6",
			Hemisphere:          "both",
			RecommendedEyepiece: "10mm or shorter with a Barlow",
		},
		{
			Name:                "Andromeda Galaxy",
			Type:                "galaxy",
			Description:         "The nearest large spiral galaxy, a naked-eye smudge under dark skies and a sprawling oval in binoculars.",
			Coordinates:         "RA 00h 42m, Dec +41° 16'",
			Month:               "October",
			BestViewingTime:     "Late evening, autumn",
			VisibilityRating:    "good",
			Information:         "Also catalogued as M31. Use low power; the galaxy spans several Moon-widths of sky.",
			Constellation:       "Andromeda",
			Magnitude:           "3.4",
			Hemisphere:          "northern",
			RecommendedEyepiece: "32mm wide-field",
		},
		{
			Name:                "Orion Nebula",
			Type:                "nebula",
			Description:         "A bright stellar nursery in Orion's sword, showing nebulosity and the Trapezium cluster in any telescope.",
			Coordinates:         "RA 05h 35m, Dec -05° 23'",
			Month:               "January",
			BestViewingTime:     "Mid-evening, winter",
			VisibilityRating:    "excellent",
			Information:         "Also catalogued as M42. An OIII or UHC filter pulls out the fainter wings.",
			Constellation:       "Orion",
			Magnitude:           "4.0",
			Hemisphere:          "both",
			RecommendedEyepiece: "15mm, plus 8mm for the Trapezium",
		},
		{
			Name:                "Pleiades",
			Type:                "star_cluster",
			Description:         "The Seven Sisters, a bright open cluster that fills a binocular field with blue-white stars.",
			Coordinates:         "RA 03h 47m, Dec +24° 07'",
			Month:               "December",
			BestViewingTime:     "Evening, late autumn and winter",
			VisibilityRating:    "excellent",
			Information:         "Also catalogued as M45. Too large for most telescopes; binoculars show it best.",
			Constellation:       "Taurus",
			Magnitude:           "1.6",
			Hemisphere:          "both",
			RecommendedEyepiece: "40mm or binoculars",
		},
	}

	for _, obj := range seed {
		if _, err := repo.CreateObject(obj); err != nil {
			return fmt.Errorf("failed to seed object %q: %w", obj.Name, err)
		}
	}

	slog.Info("Seeded celestial objects", "count", len(seed))
	return nil
}

func seedGuides(repo GuideRepository) error {
	count, err := repo.GetGuideCount()
	if err != nil {
		return fmt.Errorf("failed to check guide count: %w", err)
	}
	if count > 0 {
		return nil
	}

	seed := []MonthlyGuide{
		{
			Month:      "January",
			Year:       2026,
			Headline:   "Winter Showpieces",
			Content:    "Orion dominates the evening sky. Start with the Orion Nebula, then sweep up to the Pleiades and the clusters of Auriga.",
			Hemisphere: "northern",
		},
		{
			Month:      "July",
			Year:       2026,
			Headline:   "Summer Milky Way",
			Content:    "The galactic core rises after dusk. Scan Sagittarius and Scorpius for nebulae and globular clusters, and catch Saturn climbing in the east.",
			Hemisphere: "both",
		},
	}

	for _, guide := range seed {
		if _, err := repo.CreateGuide(guide); err != nil {
			return fmt.Errorf("failed to seed guide %q: %w", guide.Headline, err)
		}
	}

	slog.Info("Seeded monthly guides", "count", len(seed))
	return nil
}

func seedTips(repo TipRepository) error {
	count, err := repo.GetTipCount()
	if err != nil {
		return fmt.Errorf("failed to check tip count: %w", err)
	}
	if count > 0 {
		return nil
	}

	seed := []TelescopeTip{
		{
			Title:    "Let the telescope cool down",
			Content:  "Set the telescope outside 30 to 60 minutes before observing. Air currents inside a warm tube blur planetary detail.",
			Category: "equipment",
		},
		{
			Title:    "Use averted vision on faint objects",
			Content:  "Look slightly to the side of a faint galaxy or nebula. The edge of your retina is more sensitive to dim light than the center.",
			Category: "technique",
		},
		{
			Title:    "Start with low magnification",
			Content:  "Find targets with your longest eyepiece first, center them, then step up in power. High magnification narrows the field and makes objects harder to locate.",
			Category: "technique",
		},
	}

	for _, tip := range seed {
		if _, err := repo.CreateTip(tip); err != nil {
			return fmt.Errorf("failed to seed tip %q: %w", tip.Title, err)
		}
	}

	slog.Info("Seeded telescope tips", "count", len(seed))
	return nil
}
