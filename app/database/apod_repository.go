package database

import (
	"database/sql"
	"fmt"
)

var _ ApodRepository = (*ApodRepositoryImpl)(nil)

// ApodRepositoryImpl handles the date-keyed cache of picture-of-the-day payloads
type ApodRepositoryImpl struct {
	db *DB
}

func NewApodRepository(db *DB) *ApodRepositoryImpl {
	return &ApodRepositoryImpl{db: db}
}

func (r *ApodRepositoryImpl) GetEntry(date string) (*ApodEntry, error) {
	var entry ApodEntry
	err := r.db.QueryRow(`SELECT date, payload, fetched_at FROM apod_cache WHERE date = ?`, date).
		Scan(&entry.Date, &entry.Payload, &entry.FetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached entry: %w", err)
	}
	return &entry, nil
}

func (r *ApodRepositoryImpl) GetLatestEntry() (*ApodEntry, error) {
	var entry ApodEntry
	err := r.db.QueryRow(`SELECT date, payload, fetched_at FROM apod_cache ORDER BY date DESC LIMIT 1`).
		Scan(&entry.Date, &entry.Payload, &entry.FetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest cached entry: %w", err)
	}
	return &entry, nil
}

func (r *ApodRepositoryImpl) UpsertEntry(date string, payload string) error {
	_, err := r.db.Exec(`
		INSERT INTO apod_cache (date, payload, fetched_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (date) DO UPDATE SET payload = excluded.payload, fetched_at = CURRENT_TIMESTAMP`,
		date, payload)
	if err != nil {
		return fmt.Errorf("failed to upsert cached entry: %w", err)
	}
	return nil
}
