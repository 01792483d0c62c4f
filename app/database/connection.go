package database

import (
	"database/sql"
	"fmt"
	"net/url"

	_ "modernc.org/sqlite"
)

// DB wraps the sql.DB connection pool
type DB struct {
	*sql.DB
}

// NewConnection opens (creating if necessary) the SQLite database at path
func NewConnection(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?%s", path, url.Values{
		"_pragma": []string{"busy_timeout(5000)", "journal_mode(WAL)", "foreign_keys(1)"},
	}.Encode())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; a small pool avoids SQLITE_BUSY churn
	db.SetMaxOpenConns(4)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}
