package repositories

import (
	"database/sql"
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrDatabaseError is returned for unexpected database errors.
	// It can be used to wrap more specific driver errors.
	ErrDatabaseError = errors.New("database error")

	// ErrDuplicateKey is returned when an insert/update violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")
)

// SQLExecutor defines an interface that can be satisfied by *sql.DB or *sql.Tx
// This allows repository methods to be used within transactions or with a direct DB connection.
type SQLExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

// isUniqueViolation reports whether err is a SQLite unique-constraint
// failure. The modernc driver surfaces constraint errors by message, so the
// check matches the stable "UNIQUE constraint failed" prefix SQLite emits.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
