package database

import (
	"database/sql"
	"fmt"
)

var _ TipRepository = (*TipRepositoryImpl)(nil)

// TipRepositoryImpl handles database operations for telescope tips
type TipRepositoryImpl struct {
	db *DB
}

func NewTipRepository(db *DB) *TipRepositoryImpl {
	return &TipRepositoryImpl{db: db}
}

const tipColumns = `id, title, content, category, image_url`

func (r *TipRepositoryImpl) GetAllTips() ([]TelescopeTip, error) {
	rows, err := r.db.Query(`SELECT ` + tipColumns + ` FROM telescope_tips ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query telescope tips: %w", err)
	}
	defer rows.Close()

	return scanTips(rows)
}

func (r *TipRepositoryImpl) GetTipsByCategory(category string) ([]TelescopeTip, error) {
	rows, err := r.db.Query(`SELECT `+tipColumns+` FROM telescope_tips WHERE category = ? COLLATE NOCASE ORDER BY id`, category)
	if err != nil {
		return nil, fmt.Errorf("failed to query telescope tips by category: %w", err)
	}
	defer rows.Close()

	return scanTips(rows)
}

func (r *TipRepositoryImpl) GetTipCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM telescope_tips`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count telescope tips: %w", err)
	}
	return count, nil
}

func (r *TipRepositoryImpl) CreateTip(tip TelescopeTip) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO telescope_tips (title, content, category, image_url)
		VALUES (?, ?, ?, ?)`,
		tip.Title, tip.Content, tip.Category, tip.ImageURL)
	if err != nil {
		return 0, fmt.Errorf("failed to create telescope tip: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted tip id: %w", err)
	}
	return id, nil
}

func scanTips(rows *sql.Rows) ([]TelescopeTip, error) {
	var tips []TelescopeTip
	for rows.Next() {
		var tip TelescopeTip
		if err := rows.Scan(&tip.ID, &tip.Title, &tip.Content, &tip.Category, &tip.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan telescope tip: %w", err)
		}
		tips = append(tips, tip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate telescope tips: %w", err)
	}
	return tips, nil
}
