package repositories

import (
	"database/sql"
	"fmt"

	"hr_ats_backend/internal/models"
)

// HistoryRepository defines the interface for applicant audit-history
// operations. History is append-only: there is no update or delete; entries
// disappear only via the cascade when their applicant is deleted.
type HistoryRepository interface {
	AppendEntry(executor SQLExecutor, entry *models.HistoryEntry) (int64, error)
	GetHistoryByApplicantID(applicantID int64) ([]models.HistoryEntry, error)
}

type historyRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new instance of HistoryRepository.
func NewHistoryRepository(db *sql.DB) HistoryRepository {
	return &historyRepository{db: db}
}

// AppendEntry records one audit event for an applicant.
func (r *historyRepository) AppendEntry(executor SQLExecutor, entry *models.HistoryEntry) (int64, error) {
	res, err := executor.Exec(
		"INSERT INTO history (applicant_id, date, change) VALUES (?, ?, ?)",
		entry.ApplicantID, entry.Date, entry.Change,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: appending history for applicant %d: %v", ErrDatabaseError, entry.ApplicantID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: reading new history id: %v", ErrDatabaseError, err)
	}
	entry.ID = id
	return id, nil
}

// GetHistoryByApplicantID returns an applicant's audit trail in insertion
// order.
func (r *historyRepository) GetHistoryByApplicantID(applicantID int64) ([]models.HistoryEntry, error) {
	rows, err := r.db.Query(
		"SELECT id, applicant_id, date, change FROM history WHERE applicant_id = ? ORDER BY id",
		applicantID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: listing history for applicant %d: %v", ErrDatabaseError, applicantID, err)
	}
	defer rows.Close()

	entries := []models.HistoryEntry{}
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(&e.ID, &e.ApplicantID, &e.Date, &e.Change); err != nil {
			return nil, fmt.Errorf("%w: scanning history entry: %v", ErrDatabaseError, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating history entries: %v", ErrDatabaseError, err)
	}
	return entries, nil
}
