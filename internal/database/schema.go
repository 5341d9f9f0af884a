package database

import (
	"database/sql"
	"fmt"

	"hr_ats_backend/internal/models"
	"hr_ats_backend/pkg/utils"
)

// ApplySchema brings the database up to the current schema. It is run on
// every process start and must be idempotent: tables are created only if
// absent, columns are added only if missing, and templates are seeded only
// when the table is empty.
func ApplySchema(db *sql.DB) error {
	if err := createTables(db); err != nil {
		return err
	}
	migrateApplicants(db)
	migrateTemplates(db)
	if err := seedTemplates(db); err != nil {
		return err
	}
	return nil
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS applicants (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT,
			job TEXT,
			status TEXT,
			notes TEXT,
			interview_date TEXT,
			applied_date TEXT,
			hired_date TEXT,
			source TEXT DEFAULT 'Manual'
		)`,
		`CREATE TABLE IF NOT EXISTS history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			applicant_id INTEGER,
			date TEXT,
			change TEXT,
			FOREIGN KEY(applicant_id) REFERENCES applicants(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS email_templates (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL,
			subject TEXT,
			body TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating tables: %w", err)
		}
	}
	return nil
}

// migrateApplicants adds columns introduced after the first release to
// applicant tables created by older versions. A failed ALTER (e.g. the
// column already exists from a partially applied earlier run) is logged and
// skipped; migration must tolerate partial prior application.
func migrateApplicants(db *sql.DB) {
	existing, err := tableColumns(db, "applicants")
	if err != nil {
		utils.LogError(err, "migrateApplicants: could not read applicant columns")
		return
	}

	migrations := []struct {
		name string
		def  string
	}{
		{"interview_date", "TEXT"},
		{"applied_date", "TEXT"},
		{"hired_date", "TEXT"},
		{"notes", "TEXT"},
		{"source", "TEXT DEFAULT 'Manual'"},
	}

	for _, m := range migrations {
		if existing[m.name] {
			continue
		}
		if _, err := db.Exec("ALTER TABLE applicants ADD COLUMN " + m.name + " " + m.def); err != nil {
			utils.LogError(err, "migrateApplicants: could not add column "+m.name)
			continue
		}
		utils.LogInfo("migrateApplicants: added column", map[string]interface{}{"column": m.name})
	}

	// Rows that predate the source column get the manual-entry tag.
	if !existing["source"] {
		if _, err := db.Exec("UPDATE applicants SET source = 'Manual' WHERE source IS NULL"); err != nil {
			utils.LogError(err, "migrateApplicants: could not backfill source")
		}
	}
}

// migrateTemplates ensures the template table is name-keyed. Tables created
// before names existed get the column added and a placeholder name per row.
func migrateTemplates(db *sql.DB) {
	existing, err := tableColumns(db, "email_templates")
	if err != nil {
		utils.LogError(err, "migrateTemplates: could not read template columns")
		return
	}
	if existing["name"] || !existing["id"] {
		return
	}
	if _, err := db.Exec("ALTER TABLE email_templates ADD COLUMN name TEXT"); err != nil {
		utils.LogError(err, "migrateTemplates: could not add name column")
		return
	}
	if _, err := db.Exec("UPDATE email_templates SET name = 'Template ' || id WHERE name IS NULL OR name = ''"); err != nil {
		utils.LogError(err, "migrateTemplates: could not backfill template names")
		return
	}
	// New tables carry UNIQUE on name; added columns need the index created
	// separately.
	if _, err := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_email_templates_name ON email_templates(name)"); err != nil {
		utils.LogError(err, "migrateTemplates: could not index template names")
	}
}

// seedTemplates inserts the default email templates on first run only.
func seedTemplates(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM email_templates").Scan(&count); err != nil {
		return fmt.Errorf("counting templates: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, t := range models.DefaultTemplates {
		if _, err := db.Exec(
			"INSERT INTO email_templates (name, subject, body) VALUES (?, ?, ?)",
			t.Name, t.Subject, t.Body,
		); err != nil {
			return fmt.Errorf("seeding template %q: %w", t.Name, err)
		}
	}
	utils.LogInfo("Seeded default email templates", map[string]interface{}{"count": len(models.DefaultTemplates)})
	return nil
}

func tableColumns(db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.Query("PRAGMA table_info(" + table + ")")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := map[string]bool{}
	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	return cols, rows.Err()
}
