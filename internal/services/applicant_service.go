package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hr_ats_backend/internal/models"
	"hr_ats_backend/internal/repositories"
)

// --- Custom Service Errors for Applicant ---
var (
	ErrApplicantNotFound   = errors.New("applicant not found")
	ErrApplicantValidation = errors.New("applicant data validation error")
	ErrUnknownStage        = errors.New("status is not a known pipeline stage")
)

// History entry texts. The status text is part of the audit contract: one
// entry per successful status change, exactly "Status → <status>".
const (
	historyAddedManually = "Added manually"
	historyStatusFormat  = "Status → %s"
	historyInterviewFmt  = "Interview: %s"
)

// isoDate renders a time as the YYYY-MM-DD strings the store persists.
func isoDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// --- Applicant DTOs ---
type CreateApplicantRequest struct {
	Name        string  `json:"name" binding:"required"`
	Email       string  `json:"email" binding:"required"`
	Phone       *string `json:"phone"`
	Job         *string `json:"job"`
	AppliedDate *string `json:"applied_date"` // Format YYYY-MM-DD
	Source      *string `json:"source"`
	Notes       *string `json:"notes"`
}

// --- ApplicantService Interface ---
type ApplicantService interface {
	CreateApplicant(req CreateApplicantRequest) (*models.Applicant, error)
	GetApplicantByID(id int64) (*models.Applicant, error)
	GetApplicants() ([]models.Applicant, error)
	GetHistory(applicantID int64) ([]models.HistoryEntry, error)
	UpdateStatus(id int64, newStatus string) error
	SetInterviewDate(id int64, date string) error
	DeleteApplicant(id int64) error
	DashboardSummary(today time.Time) (*models.DashboardSummary, error)
}

// --- applicantService Implementation ---
type applicantService struct {
	applicantRepo repositories.ApplicantRepository
	historyRepo   repositories.HistoryRepository
	db            *sql.DB
}

// NewApplicantService creates a new instance of ApplicantService.
func NewApplicantService(applicantRepo repositories.ApplicantRepository, historyRepo repositories.HistoryRepository, db *sql.DB) ApplicantService {
	return &applicantService{applicantRepo: applicantRepo, historyRepo: historyRepo, db: db}
}

// CreateApplicant validates and stores a manually entered applicant together
// with its first audit entry. Name and email are required after trimming;
// applied date defaults to today and source to "Manual".
func (s *applicantService) CreateApplicant(req CreateApplicantRequest) (*models.Applicant, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrApplicantValidation)
	}

	today := isoDate(time.Now())
	applicant := &models.Applicant{
		Name:        name,
		Email:       email,
		Phone:       trimOptional(req.Phone),
		Job:         trimOptional(req.Job),
		Status:      models.DefaultStatus,
		Notes:       trimOptional(req.Notes),
		AppliedDate: today,
		Source:      models.DefaultSource,
	}
	if d := trimOptional(req.AppliedDate); d != nil {
		applicant.AppliedDate = *d
	}
	if src := trimOptional(req.Source); src != nil {
		applicant.Source = *src
	}

	err := runInTx(s.db, func(tx *sql.Tx) error {
		if _, err := s.applicantRepo.CreateApplicant(tx, applicant); err != nil {
			return err
		}
		_, err := s.historyRepo.AppendEntry(tx, &models.HistoryEntry{
			ApplicantID: applicant.ID,
			Date:        today,
			Change:      historyAddedManually,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return applicant, nil
}

// GetApplicantByID fetches a single applicant.
func (s *applicantService) GetApplicantByID(id int64) (*models.Applicant, error) {
	applicant, err := s.applicantRepo.GetApplicantByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrApplicantNotFound
		}
		return nil, err
	}
	return applicant, nil
}

// GetApplicants lists all applicants, most recently applied first.
func (s *applicantService) GetApplicants() ([]models.Applicant, error) {
	return s.applicantRepo.GetApplicants()
}

// GetHistory returns an applicant's audit trail in insertion order.
func (s *applicantService) GetHistory(applicantID int64) ([]models.HistoryEntry, error) {
	if _, err := s.GetApplicantByID(applicantID); err != nil {
		return nil, err
	}
	return s.historyRepo.GetHistoryByApplicantID(applicantID)
}

// UpdateStatus advances an applicant through the pipeline. The stage set is
// enforced here, at the boundary, not in the store: statuses already on disk
// (imported or legacy) are preserved as-is, but every new write must be one
// of the canonical stages.
func (s *applicantService) UpdateStatus(id int64, newStatus string) error {
	newStatus = strings.TrimSpace(newStatus)
	if !models.IsKnownStage(newStatus) {
		return fmt.Errorf("%w: %q", ErrUnknownStage, newStatus)
	}

	return runInTx(s.db, func(tx *sql.Tx) error {
		if err := s.applicantRepo.UpdateStatus(tx, id, newStatus); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrApplicantNotFound
			}
			return err
		}
		_, err := s.historyRepo.AppendEntry(tx, &models.HistoryEntry{
			ApplicantID: id,
			Date:        isoDate(time.Now()),
			Change:      fmt.Sprintf(historyStatusFormat, newStatus),
		})
		return err
	})
}

// SetInterviewDate stores the trimmed date string without format validation
// and records the scheduling in the history.
func (s *applicantService) SetInterviewDate(id int64, date string) error {
	date = strings.TrimSpace(date)
	if date == "" {
		return fmt.Errorf("%w: interview date is required", ErrApplicantValidation)
	}

	return runInTx(s.db, func(tx *sql.Tx) error {
		if err := s.applicantRepo.UpdateInterviewDate(tx, id, date); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrApplicantNotFound
			}
			return err
		}
		_, err := s.historyRepo.AppendEntry(tx, &models.HistoryEntry{
			ApplicantID: id,
			Date:        isoDate(time.Now()),
			Change:      fmt.Sprintf(historyInterviewFmt, date),
		})
		return err
	})
}

// DeleteApplicant removes the applicant; the foreign key cascades the
// history. Confirmation is a presentation concern and does not live here.
func (s *applicantService) DeleteApplicant(id int64) error {
	err := s.applicantRepo.DeleteApplicant(s.db, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrApplicantNotFound
	}
	return err
}

// DashboardSummary aggregates the pipeline as of today: total count, counts
// per status, interviews in the next 7 days (inclusive bounds) and the last
// 7 days of arrivals capped at 12 rows.
func (s *applicantService) DashboardSummary(today time.Time) (*models.DashboardSummary, error) {
	total, err := s.applicantRepo.CountApplicants()
	if err != nil {
		return nil, err
	}
	statusCounts, err := s.applicantRepo.CountByStatus()
	if err != nil {
		return nil, err
	}
	upcoming, err := s.applicantRepo.UpcomingInterviews(isoDate(today), isoDate(today.AddDate(0, 0, 7)))
	if err != nil {
		return nil, err
	}
	recent, err := s.applicantRepo.RecentlyAdded(isoDate(today.AddDate(0, 0, -7)), 12)
	if err != nil {
		return nil, err
	}
	return &models.DashboardSummary{
		Total:              total,
		StatusCounts:       statusCounts,
		UpcomingInterviews: upcoming,
		RecentlyAdded:      recent,
	}, nil
}

// runInTx runs fn inside a transaction, rolling back unless it commits.
func runInTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", repositories.ErrDatabaseError, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing transaction: %v", repositories.ErrDatabaseError, err)
	}
	committed = true
	return nil
}

// trimOptional trims an optional string, mapping empty results to nil.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
