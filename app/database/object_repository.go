package database

import (
	"database/sql"
	"fmt"
)

var _ ObjectRepository = (*ObjectRepositoryImpl)(nil)

// ObjectRepositoryImpl handles database operations for celestial objects
type ObjectRepositoryImpl struct {
	db *DB
}

func NewObjectRepository(db *DB) *ObjectRepositoryImpl {
	return &ObjectRepositoryImpl{db: db}
}

const objectColumns = `id, name, type, description, coordinates, month, best_viewing_time,
	image_url, visibility_rating, information, constellation, magnitude,
	hemisphere, recommended_eyepiece, created_at`

func (r *ObjectRepositoryImpl) GetAllObjects() ([]CelestialObject, error) {
	rows, err := r.db.Query(`SELECT ` + objectColumns + ` FROM celestial_objects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query celestial objects: %w", err)
	}
	defer rows.Close()

	return scanObjects(rows)
}

func (r *ObjectRepositoryImpl) GetObject(id int64) (*CelestialObject, error) {
	row := r.db.QueryRow(`SELECT `+objectColumns+` FROM celestial_objects WHERE id = ?`, id)

	obj, err := scanObject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get celestial object: %w", err)
	}
	return obj, nil
}

func (r *ObjectRepositoryImpl) GetObjectByName(name string) (*CelestialObject, error) {
	row := r.db.QueryRow(`SELECT `+objectColumns+` FROM celestial_objects WHERE LOWER(name) = LOWER(?) LIMIT 1`, name)

	obj, err := scanObject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get celestial object by name: %w", err)
	}
	return obj, nil
}

func (r *ObjectRepositoryImpl) FilterObjects(objectType, month, hemisphere string) ([]CelestialObject, error) {
	query := `SELECT ` + objectColumns + ` FROM celestial_objects WHERE 1=1`
	args := []interface{}{}

	if objectType != "" {
		query += ` AND type = ?`
		args = append(args, objectType)
	}
	if month != "" {
		// Objects without a month are visible year-round and match any filter
		query += ` AND (month = ? COLLATE NOCASE OR month = '')`
		args = append(args, month)
	}
	if hemisphere != "" {
		query += ` AND (hemisphere = ? COLLATE NOCASE OR hemisphere = 'both' OR hemisphere = '')`
		args = append(args, hemisphere)
	}
	query += ` ORDER BY id`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to filter celestial objects: %w", err)
	}
	defer rows.Close()

	return scanObjects(rows)
}

func (r *ObjectRepositoryImpl) GetObjectsWithoutImage(limit int) ([]CelestialObject, error) {
	rows, err := r.db.Query(`SELECT `+objectColumns+` FROM celestial_objects WHERE image_url = '' ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query objects without image: %w", err)
	}
	defer rows.Close()

	return scanObjects(rows)
}

func (r *ObjectRepositoryImpl) GetObjectCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM celestial_objects`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count celestial objects: %w", err)
	}
	return count, nil
}

func (r *ObjectRepositoryImpl) CreateObject(obj CelestialObject) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO celestial_objects (name, type, description, coordinates, month,
			best_viewing_time, image_url, visibility_rating, information,
			constellation, magnitude, hemisphere, recommended_eyepiece)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		obj.Name, obj.Type, obj.Description, obj.Coordinates, obj.Month,
		obj.BestViewingTime, obj.ImageURL, obj.VisibilityRating, obj.Information,
		obj.Constellation, obj.Magnitude, obj.Hemisphere, obj.RecommendedEyepiece)
	if err != nil {
		return 0, fmt.Errorf("failed to create celestial object: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted object id: %w", err)
	}
	return id, nil
}

func (r *ObjectRepositoryImpl) UpdateObjectImage(id int64, imageURL string) error {
	_, err := r.db.Exec(`UPDATE celestial_objects SET image_url = ? WHERE id = ?`, imageURL, id)
	if err != nil {
		return fmt.Errorf("failed to update object image: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanObject(row rowScanner) (*CelestialObject, error) {
	var obj CelestialObject
	err := row.Scan(&obj.ID, &obj.Name, &obj.Type, &obj.Description, &obj.Coordinates,
		&obj.Month, &obj.BestViewingTime, &obj.ImageURL, &obj.VisibilityRating,
		&obj.Information, &obj.Constellation, &obj.Magnitude, &obj.Hemisphere,
		&obj.RecommendedEyepiece, &obj.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &obj, nil
}

func scanObjects(rows *sql.Rows) ([]CelestialObject, error) {
	var objects []CelestialObject
	for rows.Next() {
		obj, err := scanObject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan celestial object: %w", err)
		}
		objects = append(objects, *obj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate celestial objects: %w", err)
	}
	return objects, nil
}
