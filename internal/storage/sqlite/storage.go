package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	// import sqlite driver.
	_ "github.com/mattn/go-sqlite3"
)

var createTableStatement = `
CREATE TABLE IF NOT EXISTS expenses
(
 id INTEGER PRIMARY KEY AUTOINCREMENT,
 date TEXT NOT NULL,
 amount REAL NOT NULL,
 category TEXT NOT NULL,
 description TEXT NOT NULL DEFAULT ''
) STRICT;
`

type Storage struct {
	db *sql.DB
}

// New opens the snapshot database at source, creating the schema when
// needed.
func New(source string) (*Storage, error) {
	db, err := sql.Open("sqlite3", source)
	if err != nil {
		return nil, err
	}

	// A single connection keeps ":memory:" databases alive between calls.
	db.SetMaxOpenConns(1)

	_, err = db.ExecContext(context.Background(), createTableStatement)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create expenses table: %w", err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}
