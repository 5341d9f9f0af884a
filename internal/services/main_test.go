package services

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"hr_ats_backend/internal/database"
)

// newTestDB opens a throwaway file-backed database with the full schema
// applied, mirroring what a process start does.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.ApplySchema(db))
	return db
}

func strPtr(s string) *string {
	return &s
}
