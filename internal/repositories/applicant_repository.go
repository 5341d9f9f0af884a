package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"hr_ats_backend/internal/models"
)

// ApplicantRepository defines the interface for applicant-related database operations.
type ApplicantRepository interface {
	CreateApplicant(executor SQLExecutor, applicant *models.Applicant) (int64, error)
	// CreateApplicantIfAbsent inserts only when no row with the same
	// name+email exists; it returns false without error for a duplicate.
	CreateApplicantIfAbsent(executor SQLExecutor, applicant *models.Applicant) (bool, error)
	GetApplicantByID(id int64) (*models.Applicant, error)
	GetApplicants() ([]models.Applicant, error)
	UpdateStatus(executor SQLExecutor, id int64, status string) error
	UpdateInterviewDate(executor SQLExecutor, id int64, date string) error
	DeleteApplicant(executor SQLExecutor, id int64) error

	CountApplicants() (int, error)
	CountByStatus() (map[string]int, error)
	UpcomingInterviews(from, to string) ([]models.UpcomingInterview, error)
	RecentlyAdded(since string, limit int) ([]models.Applicant, error)
}

type applicantRepository struct {
	db *sql.DB
}

// NewApplicantRepository creates a new instance of ApplicantRepository.
func NewApplicantRepository(db *sql.DB) ApplicantRepository {
	return &applicantRepository{db: db}
}

// Rows written before the status/source/applied_date columns existed can
// hold NULLs; COALESCE keeps the scan targets plain strings.
const applicantColumns = "id, name, email, phone, job, COALESCE(status, ''), notes, interview_date, COALESCE(applied_date, ''), hired_date, COALESCE(source, 'Manual')"

// CreateApplicant inserts a new applicant into the database.
func (r *applicantRepository) CreateApplicant(executor SQLExecutor, applicant *models.Applicant) (int64, error) {
	query := `INSERT INTO applicants (name, email, phone, job, status, notes, applied_date, source)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := executor.Exec(query,
		applicant.Name, applicant.Email, applicant.Phone, applicant.Job,
		applicant.Status, applicant.Notes, applicant.AppliedDate, applicant.Source,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %v", ErrDuplicateKey, err)
		}
		return 0, fmt.Errorf("%w: creating applicant: %v", ErrDatabaseError, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: reading new applicant id: %v", ErrDatabaseError, err)
	}
	applicant.ID = id
	return id, nil
}

// CreateApplicantIfAbsent performs the import insert: the WHERE NOT EXISTS
// guard dedups on name+email against existing rows and rows inserted earlier
// in the same run, without constraining manual entry.
func (r *applicantRepository) CreateApplicantIfAbsent(executor SQLExecutor, applicant *models.Applicant) (bool, error) {
	query := `INSERT INTO applicants (name, email, phone, job, status, applied_date, source)
	          SELECT ?, ?, ?, ?, ?, ?, ?
	          WHERE NOT EXISTS (SELECT 1 FROM applicants WHERE name = ? AND email = ?)`

	res, err := executor.Exec(query,
		applicant.Name, applicant.Email, applicant.Phone, applicant.Job,
		applicant.Status, applicant.AppliedDate, applicant.Source,
		applicant.Name, applicant.Email,
	)
	if err != nil {
		return false, fmt.Errorf("%w: importing applicant: %v", ErrDatabaseError, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: reading import result: %v", ErrDatabaseError, err)
	}
	if affected == 0 {
		return false, nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return false, fmt.Errorf("%w: reading new applicant id: %v", ErrDatabaseError, err)
	}
	applicant.ID = id
	return true, nil
}

// GetApplicantByID retrieves an applicant by their ID.
func (r *applicantRepository) GetApplicantByID(id int64) (*models.Applicant, error) {
	applicant := &models.Applicant{}
	query := `SELECT ` + applicantColumns + ` FROM applicants WHERE id = ?`

	err := r.db.QueryRow(query, id).Scan(
		&applicant.ID, &applicant.Name, &applicant.Email, &applicant.Phone,
		&applicant.Job, &applicant.Status, &applicant.Notes, &applicant.InterviewDate,
		&applicant.AppliedDate, &applicant.HiredDate, &applicant.Source,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting applicant by ID %d: %v", ErrDatabaseError, id, err)
	}
	return applicant, nil
}

// GetApplicants retrieves all applicants, most recently applied first.
// ISO date strings compare correctly as text, so the ordering is done in SQL.
func (r *applicantRepository) GetApplicants() ([]models.Applicant, error) {
	query := `SELECT ` + applicantColumns + ` FROM applicants ORDER BY applied_date DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: listing applicants: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	return scanApplicants(rows)
}

// UpdateStatus sets the applicant's status field.
func (r *applicantRepository) UpdateStatus(executor SQLExecutor, id int64, status string) error {
	return r.updateField(executor, id, "status", status)
}

// UpdateInterviewDate sets the applicant's interview date.
func (r *applicantRepository) UpdateInterviewDate(executor SQLExecutor, id int64, date string) error {
	return r.updateField(executor, id, "interview_date", date)
}

func (r *applicantRepository) updateField(executor SQLExecutor, id int64, column, value string) error {
	res, err := executor.Exec("UPDATE applicants SET "+column+" = ? WHERE id = ?", value, id)
	if err != nil {
		return fmt.Errorf("%w: updating applicant %s: %v", ErrDatabaseError, column, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: updating applicant %s: %v", ErrDatabaseError, column, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteApplicant removes an applicant; the history cascade is enforced by
// the foreign key.
func (r *applicantRepository) DeleteApplicant(executor SQLExecutor, id int64) error {
	res, err := executor.Exec("DELETE FROM applicants WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("%w: deleting applicant %d: %v", ErrDatabaseError, id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: deleting applicant %d: %v", ErrDatabaseError, id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountApplicants returns the total number of applicants.
func (r *applicantRepository) CountApplicants() (int, error) {
	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM applicants").Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: counting applicants: %v", ErrDatabaseError, err)
	}
	return total, nil
}

// CountByStatus returns applicant counts grouped by status. Rows with a NULL
// or empty status are excluded; legacy status strings are counted verbatim.
func (r *applicantRepository) CountByStatus() (map[string]int, error) {
	rows, err := r.db.Query(`SELECT status, COUNT(*) FROM applicants
	                         WHERE status IS NOT NULL AND status != ''
	                         GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("%w: counting applicants by status: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: scanning status count: %v", ErrDatabaseError, err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: counting applicants by status: %v", ErrDatabaseError, err)
	}
	return counts, nil
}

// UpcomingInterviews lists applicants whose interview date falls in
// [from, to] inclusive, soonest first.
func (r *applicantRepository) UpcomingInterviews(from, to string) ([]models.UpcomingInterview, error) {
	rows, err := r.db.Query(`SELECT id, name, job, interview_date FROM applicants
	                         WHERE interview_date >= ? AND interview_date <= ?
	                         ORDER BY interview_date`, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: listing upcoming interviews: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	interviews := []models.UpcomingInterview{}
	for rows.Next() {
		var iv models.UpcomingInterview
		if err := rows.Scan(&iv.ID, &iv.Name, &iv.Job, &iv.InterviewDate); err != nil {
			return nil, fmt.Errorf("%w: scanning upcoming interview: %v", ErrDatabaseError, err)
		}
		interviews = append(interviews, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listing upcoming interviews: %v", ErrDatabaseError, err)
	}
	return interviews, nil
}

// RecentlyAdded lists applicants applied on or after since, newest first,
// capped at limit rows.
func (r *applicantRepository) RecentlyAdded(since string, limit int) ([]models.Applicant, error) {
	rows, err := r.db.Query(`SELECT `+applicantColumns+` FROM applicants
	                         WHERE applied_date >= ?
	                         ORDER BY applied_date DESC LIMIT ?`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: listing recent applicants: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	return scanApplicants(rows)
}

func scanApplicants(rows *sql.Rows) ([]models.Applicant, error) {
	applicants := []models.Applicant{}
	for rows.Next() {
		var a models.Applicant
		if err := rows.Scan(
			&a.ID, &a.Name, &a.Email, &a.Phone, &a.Job, &a.Status, &a.Notes,
			&a.InterviewDate, &a.AppliedDate, &a.HiredDate, &a.Source,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning applicant: %v", ErrDatabaseError, err)
		}
		applicants = append(applicants, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating applicants: %v", ErrDatabaseError, err)
	}
	return applicants, nil
}
