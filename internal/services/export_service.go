package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"hr_ats_backend/internal/repositories"
	"hr_ats_backend/pkg/utils"
)

// exportHeaders mirror the columns the importer resolves, so an exported
// workbook round-trips through ImportXLSX.
var exportHeaders = []string{"Name", "Email", "Phone", "Job Title", "Status", "Source", "Applied Date", "Interview Date"}

// --- ExportService Interface ---
type ExportService interface {
	// ExportApplicantsXLSX renders all applicants as an XLSX workbook.
	ExportApplicantsXLSX() (*bytes.Buffer, error)
}

// --- exportService Implementation ---
type exportService struct {
	applicantRepo repositories.ApplicantRepository
}

// NewExportService creates a new instance of ExportService.
func NewExportService(applicantRepo repositories.ApplicantRepository) ExportService {
	return &exportService{applicantRepo: applicantRepo}
}

func (s *exportService) ExportApplicantsXLSX() (*bytes.Buffer, error) {
	applicants, err := s.applicantRepo.GetApplicants()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			utils.LogError(err, "ExportApplicantsXLSX: closing workbook")
		}
	}()

	sheet := "Sheet1"
	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("building header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("writing header cell %s: %w", cell, err)
		}
	}

	for row, a := range applicants {
		values := []string{
			a.Name, a.Email, deref(a.Phone), deref(a.Job),
			a.Status, a.Source, a.AppliedDate, deref(a.InterviewDate),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("building data cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("writing data cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SetSheetName(sheet, "Applicants"); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}
	return f.WriteToBuffer()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
