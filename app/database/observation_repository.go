package database

import (
	"database/sql"
	"fmt"
)

var _ ObservationRepository = (*ObservationRepositoryImpl)(nil)

// ObservationRepositoryImpl handles database operations for observing lists
type ObservationRepositoryImpl struct {
	db *DB
}

func NewObservationRepository(db *DB) *ObservationRepositoryImpl {
	return &ObservationRepositoryImpl{db: db}
}

const observationColumns = `id, user_id, object_id, date_added, is_observed, observation_notes, planned_date`

func (r *ObservationRepositoryImpl) GetUserObservations(userID int64) ([]Observation, error) {
	rows, err := r.db.Query(`SELECT `+observationColumns+` FROM observations WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query observations: %w", err)
	}
	defer rows.Close()

	var observations []Observation
	for rows.Next() {
		obs, err := scanObservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan observation: %w", err)
		}
		observations = append(observations, *obs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate observations: %w", err)
	}
	return observations, nil
}

func (r *ObservationRepositoryImpl) GetObservation(id int64) (*Observation, error) {
	row := r.db.QueryRow(`SELECT `+observationColumns+` FROM observations WHERE id = ?`, id)

	obs, err := scanObservation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get observation: %w", err)
	}
	return obs, nil
}

func (r *ObservationRepositoryImpl) CreateObservation(obs Observation) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO observations (user_id, object_id, is_observed, observation_notes, planned_date)
		VALUES (?, ?, ?, ?, ?)`,
		obs.UserID, obs.ObjectID, obs.IsObserved, obs.ObservationNotes, obs.PlannedDate)
	if err != nil {
		return 0, fmt.Errorf("failed to create observation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted observation id: %w", err)
	}
	return id, nil
}

func (r *ObservationRepositoryImpl) UpdateObservation(id int64, update ObservationUpdate) (*Observation, error) {
	if update.IsObserved != nil {
		if _, err := r.db.Exec(`UPDATE observations SET is_observed = ? WHERE id = ?`, *update.IsObserved, id); err != nil {
			return nil, fmt.Errorf("failed to update observed flag: %w", err)
		}
	}
	if update.ObservationNotes != nil {
		if _, err := r.db.Exec(`UPDATE observations SET observation_notes = ? WHERE id = ?`, *update.ObservationNotes, id); err != nil {
			return nil, fmt.Errorf("failed to update observation notes: %w", err)
		}
	}
	if update.PlannedDate != nil {
		if _, err := r.db.Exec(`UPDATE observations SET planned_date = ? WHERE id = ?`, *update.PlannedDate, id); err != nil {
			return nil, fmt.Errorf("failed to update planned date: %w", err)
		}
	}

	return r.GetObservation(id)
}

func (r *ObservationRepositoryImpl) DeleteObservation(id int64) error {
	_, err := r.db.Exec(`DELETE FROM observations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete observation: %w", err)
	}
	return nil
}

func scanObservation(row rowScanner) (*Observation, error) {
	var obs Observation
	err := row.Scan(&obs.ID, &obs.UserID, &obs.ObjectID, &obs.DateAdded,
		&obs.IsObserved, &obs.ObservationNotes, &obs.PlannedDate)
	if err != nil {
		return nil, err
	}
	return &obs, nil
}
