package database

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestApplySchemaIdempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, ApplySchema(db))

	// A second application on a current database must change nothing.
	colsBefore, err := tableColumns(db, "applicants")
	require.NoError(t, err)

	// Prove seeding is count-gated, not run-gated.
	_, err = db.Exec("DELETE FROM email_templates WHERE name = 'Rejection'")
	require.NoError(t, err)

	require.NoError(t, ApplySchema(db))

	colsAfter, err := tableColumns(db, "applicants")
	require.NoError(t, err)
	require.Equal(t, colsBefore, colsAfter)

	var templates int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM email_templates").Scan(&templates))
	require.Equal(t, 2, templates)
}

func TestApplySchemaSeedsTemplatesOnce(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, ApplySchema(db))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM email_templates").Scan(&count))
	require.Equal(t, 3, count)

	var subject string
	require.NoError(t, db.QueryRow(
		"SELECT subject FROM email_templates WHERE name = 'Offer Sent'").Scan(&subject))
	require.Equal(t, "Job Offer – {job}", subject)
}

func TestApplySchemaMigratesFirstReleaseTables(t *testing.T) {
	db := openTestDB(t)

	// Shape of the tables before interview/applied/hired/notes/source and
	// template names existed.
	_, err := db.Exec(`CREATE TABLE applicants (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT,
		job TEXT,
		status TEXT
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE email_templates (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		subject TEXT,
		body TEXT
	)`)
	require.NoError(t, err)

	_, err = db.Exec(
		"INSERT INTO applicants (name, email, status) VALUES ('Old Row', 'old@example.com', 'Applied')")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO email_templates (subject, body) VALUES ('Hello', 'World')")
	require.NoError(t, err)

	require.NoError(t, ApplySchema(db))

	cols, err := tableColumns(db, "applicants")
	require.NoError(t, err)
	for _, col := range []string{"interview_date", "applied_date", "hired_date", "notes", "source"} {
		require.True(t, cols[col], col)
	}

	// Pre-existing rows get the manual-entry source tag.
	var source string
	require.NoError(t, db.QueryRow(
		"SELECT source FROM applicants WHERE email = 'old@example.com'").Scan(&source))
	require.Equal(t, "Manual", source)

	// Nameless templates get a placeholder name, and their presence
	// suppresses default seeding.
	var name string
	require.NoError(t, db.QueryRow(
		"SELECT name FROM email_templates WHERE subject = 'Hello'").Scan(&name))
	require.Equal(t, "Template 1", name)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM email_templates").Scan(&count))
	require.Equal(t, 1, count)
}
