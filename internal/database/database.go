package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver
)

// Open opens (creating if necessary) the SQLite database file and enables
// foreign key enforcement, which the history cascade relies on.
//
// The connection pool is capped at a single connection: the store is the one
// shared mutable resource and issues one statement at a time, so serializing
// access at the pool level keeps row-level mutations from interleaving even
// if a caller adds worker-thread execution later.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database %s: %w", path, err)
	}
	return db, nil
}
