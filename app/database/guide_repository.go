package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

var _ GuideRepository = (*GuideRepositoryImpl)(nil)

// GuideRepositoryImpl handles database operations for monthly viewing guides.
// Featured object ids are stored as a JSON array in a TEXT column.
type GuideRepositoryImpl struct {
	db *DB
}

func NewGuideRepository(db *DB) *GuideRepositoryImpl {
	return &GuideRepositoryImpl{db: db}
}

const guideColumns = `id, month, year, headline, content, hemisphere, featured_objects`

func (r *GuideRepositoryImpl) GetAllGuides() ([]MonthlyGuide, error) {
	rows, err := r.db.Query(`SELECT ` + guideColumns + ` FROM monthly_guides ORDER BY year, month`)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly guides: %w", err)
	}
	defer rows.Close()

	var guides []MonthlyGuide
	for rows.Next() {
		guide, err := scanGuide(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan monthly guide: %w", err)
		}
		guides = append(guides, *guide)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monthly guides: %w", err)
	}
	return guides, nil
}

func (r *GuideRepositoryImpl) GetGuide(month string, year int, hemisphere string) (*MonthlyGuide, error) {
	row := r.db.QueryRow(`
		SELECT `+guideColumns+` FROM monthly_guides
		WHERE month = ? COLLATE NOCASE AND year = ?
			AND (hemisphere = ? COLLATE NOCASE OR hemisphere = 'both')
		LIMIT 1`, month, year, hemisphere)

	guide, err := scanGuide(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly guide: %w", err)
	}
	return guide, nil
}

func (r *GuideRepositoryImpl) GetGuideCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM monthly_guides`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count monthly guides: %w", err)
	}
	return count, nil
}

func (r *GuideRepositoryImpl) CreateGuide(guide MonthlyGuide) (int64, error) {
	featured, err := json.Marshal(guide.FeaturedObjects)
	if err != nil {
		return 0, fmt.Errorf("failed to encode featured objects: %w", err)
	}

	result, err := r.db.Exec(`
		INSERT INTO monthly_guides (month, year, headline, content, hemisphere, featured_objects)
		VALUES (?, ?, ?, ?, ?, ?)`,
		guide.Month, guide.Year, guide.Headline, guide.Content, guide.Hemisphere, string(featured))
	if err != nil {
		return 0, fmt.Errorf("failed to create monthly guide: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted guide id: %w", err)
	}
	return id, nil
}

func scanGuide(row rowScanner) (*MonthlyGuide, error) {
	var guide MonthlyGuide
	var featured string
	err := row.Scan(&guide.ID, &guide.Month, &guide.Year, &guide.Headline,
		&guide.Content, &guide.Hemisphere, &featured)
	if err != nil {
		return nil, err
	}

	if featured != "" {
		if err := json.Unmarshal([]byte(featured), &guide.FeaturedObjects); err != nil {
			return nil, fmt.Errorf("failed to decode featured objects: %w", err)
		}
	}
	return &guide, nil
}
