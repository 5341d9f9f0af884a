package services

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"hr_ats_backend/internal/models"
	"hr_ats_backend/internal/repositories"
	"hr_ats_backend/pkg/utils"
)

// --- Custom Service Errors for Import ---
var (
	// ErrImportFailed wraps any read or parse failure. The whole run is
	// rolled back, so a failed import never leaves rows behind.
	ErrImportFailed = errors.New("import failed")
	ErrImportEmpty  = errors.New("import file has no header row")
)

const (
	sourceCSV  = "CSV Import"
	sourceXLSX = "XLSX Import"

	historyImportedCSV  = "Imported from CSV"
	historyImportedXLSX = "Imported from XLSX"
)

// ImportResult reports one import run: rows actually inserted and rows
// skipped as duplicates or for missing required fields.
type ImportResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// columnMap holds the resolved index per applicant field, -1 when the header
// row has no candidate for that role.
type columnMap struct {
	name, email, phone, job, date int
}

// --- ImportService Interface ---
type ImportService interface {
	ImportCSV(r io.Reader) (*ImportResult, error)
	ImportXLSX(r io.Reader) (*ImportResult, error)
}

// --- importService Implementation ---
type importService struct {
	applicantRepo repositories.ApplicantRepository
	historyRepo   repositories.HistoryRepository
	db            *sql.DB
}

// NewImportService creates a new instance of ImportService.
func NewImportService(applicantRepo repositories.ApplicantRepository, historyRepo repositories.HistoryRepository, db *sql.DB) ImportService {
	return &importService{applicantRepo: applicantRepo, historyRepo: historyRepo, db: db}
}

// ImportCSV bulk-inserts applicants from a header-delimited CSV stream.
// Column roles are resolved heuristically from the header row; rows lacking
// a name or email are skipped; duplicates on name+email (against stored rows
// or earlier rows of the same run) are skipped. The run is one transaction.
func (s *importService) ImportCSV(r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are tolerated, roles are positional

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrImportEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading CSV header: %v", ErrImportFailed, err)
	}

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading CSV row: %v", ErrImportFailed, err)
		}
		records = append(records, record)
	}

	return s.importRows(header, records, sourceCSV, historyImportedCSV)
}

// ImportXLSX bulk-inserts applicants from the first sheet of an XLSX
// workbook, using the same header heuristics and dedup as CSV import.
func (s *importService) ImportXLSX(r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: opening workbook: %v", ErrImportFailed, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			utils.LogError(err, "ImportXLSX: closing workbook")
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrImportEmpty
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: reading sheet %q: %v", ErrImportFailed, sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrImportEmpty
	}

	return s.importRows(rows[0], rows[1:], sourceXLSX, historyImportedXLSX)
}

func (s *importService) importRows(header []string, records [][]string, source, historyText string) (*ImportResult, error) {
	cols := resolveColumns(header)
	today := isoDate(time.Now())

	result := &ImportResult{}
	err := runInTx(s.db, func(tx *sql.Tx) error {
		for _, record := range records {
			name := strings.TrimSpace(cellAt(record, cols.name))
			email := strings.TrimSpace(cellAt(record, cols.email))
			if name == "" || email == "" {
				result.Skipped++
				continue
			}

			applicant := &models.Applicant{
				Name:        name,
				Email:       email,
				Phone:       utils.NewNullString(strings.TrimSpace(cellAt(record, cols.phone))),
				Job:         utils.NewNullString(strings.TrimSpace(cellAt(record, cols.job))),
				Status:      models.DefaultStatus,
				AppliedDate: today,
				Source:      source,
			}
			if d := strings.TrimSpace(cellAt(record, cols.date)); d != "" {
				applicant.AppliedDate = d
			}

			added, err := s.applicantRepo.CreateApplicantIfAbsent(tx, applicant)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrImportFailed, err)
			}
			if !added {
				result.Skipped++
				continue
			}
			if _, err := s.historyRepo.AppendEntry(tx, &models.HistoryEntry{
				ApplicantID: applicant.ID,
				Date:        today,
				Change:      historyText,
			}); err != nil {
				return fmt.Errorf("%w: %v", ErrImportFailed, err)
			}
			result.Added++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.LogInfo("Import complete", map[string]interface{}{
		"source":  source,
		"added":   result.Added,
		"skipped": result.Skipped,
	})
	return result, nil
}

// resolveColumns maps header names to applicant fields: the first header
// containing the role's substring wins, scanning in file order, each role
// resolved independently.
func resolveColumns(header []string) columnMap {
	lowered := make([]string, len(header))
	for i, h := range header {
		lowered[i] = strings.ToLower(h)
	}

	find := func(substrings ...string) int {
		for i, h := range lowered {
			for _, sub := range substrings {
				if strings.Contains(h, sub) {
					return i
				}
			}
		}
		return -1
	}

	return columnMap{
		name:  find("name"),
		email: find("email"),
		phone: find("phone"),
		job:   find("job", "title"),
		date:  find("date", "applied"),
	}
}

// cellAt reads a record positionally, returning "" for unresolved roles and
// for rows shorter than the header.
func cellAt(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}
