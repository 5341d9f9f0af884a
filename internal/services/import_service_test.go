package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"hr_ats_backend/internal/repositories"
)

func newImportFixture(t *testing.T) (ImportService, ApplicantService, repositories.HistoryRepository) {
	t.Helper()
	db := newTestDB(t)
	applicantRepo := repositories.NewApplicantRepository(db)
	historyRepo := repositories.NewHistoryRepository(db)
	importSvc := NewImportService(applicantRepo, historyRepo, db)
	applicantSvc := NewApplicantService(applicantRepo, historyRepo, db)
	return importSvc, applicantSvc, historyRepo
}

func TestImportCSV(t *testing.T) {
	t.Run("resolves arbitrary headers and dedups on re-import", func(t *testing.T) {
		importSvc, applicantSvc, historyRepo := newImportFixture(t)

		csvData := "Full Name,Email Address,Job\nJane Doe,jane@x.com,Engineer\n"

		result, err := importSvc.ImportCSV(strings.NewReader(csvData))
		require.NoError(t, err)
		require.Equal(t, 1, result.Added)
		require.Equal(t, 0, result.Skipped)

		applicants, err := applicantSvc.GetApplicants()
		require.NoError(t, err)
		require.Len(t, applicants, 1)
		require.Equal(t, "Jane Doe", applicants[0].Name)
		require.Equal(t, "jane@x.com", applicants[0].Email)
		require.NotNil(t, applicants[0].Job)
		require.Equal(t, "Engineer", *applicants[0].Job)
		require.Equal(t, "Applied", applicants[0].Status)
		require.Equal(t, "CSV Import", applicants[0].Source)

		history, err := historyRepo.GetHistoryByApplicantID(applicants[0].ID)
		require.NoError(t, err)
		require.Len(t, history, 1)
		require.Equal(t, "Imported from CSV", history[0].Change)

		// Identical file again: everything is a duplicate.
		result, err = importSvc.ImportCSV(strings.NewReader(csvData))
		require.NoError(t, err)
		require.Equal(t, 0, result.Added)
		require.Equal(t, 1, result.Skipped)

		applicants, err = applicantSvc.GetApplicants()
		require.NoError(t, err)
		require.Len(t, applicants, 1)
	})

	t.Run("skips rows without name or email", func(t *testing.T) {
		importSvc, applicantSvc, _ := newImportFixture(t)

		csvData := strings.Join([]string{
			"Name,Email,Phone,Applied",
			"Jane Doe,jane@x.com,555-0100,2024-05-01",
			",missing-name@x.com,,",
			"No Email,,,",
			"John Roe,john@x.com,,2024-05-02",
		}, "\n")

		result, err := importSvc.ImportCSV(strings.NewReader(csvData))
		require.NoError(t, err)
		require.Equal(t, 2, result.Added)
		require.Equal(t, 2, result.Skipped)

		applicants, err := applicantSvc.GetApplicants()
		require.NoError(t, err)
		require.Len(t, applicants, 2)
		require.Equal(t, "2024-05-02", applicants[0].AppliedDate) // newest first
		require.Equal(t, "2024-05-01", applicants[1].AppliedDate)
	})

	t.Run("dedups within a single run", func(t *testing.T) {
		importSvc, applicantSvc, _ := newImportFixture(t)

		csvData := "Name,Email\nJane Doe,jane@x.com\nJane Doe,jane@x.com\n"

		result, err := importSvc.ImportCSV(strings.NewReader(csvData))
		require.NoError(t, err)
		require.Equal(t, 1, result.Added)
		require.Equal(t, 1, result.Skipped)

		applicants, err := applicantSvc.GetApplicants()
		require.NoError(t, err)
		require.Len(t, applicants, 1)
	})

	t.Run("malformed file leaves no rows behind", func(t *testing.T) {
		importSvc, applicantSvc, _ := newImportFixture(t)

		// Quoting error on the last row, after two valid rows.
		csvData := "Name,Email\nJane Doe,jane@x.com\nJohn Roe,john@x.com\n\"broken,row\n"

		_, err := importSvc.ImportCSV(strings.NewReader(csvData))
		require.ErrorIs(t, err, ErrImportFailed)

		applicants, err := applicantSvc.GetApplicants()
		require.NoError(t, err)
		require.Empty(t, applicants)
	})

	t.Run("empty input", func(t *testing.T) {
		importSvc, _, _ := newImportFixture(t)
		_, err := importSvc.ImportCSV(strings.NewReader(""))
		require.ErrorIs(t, err, ErrImportEmpty)
	})
}

func TestImportXLSX(t *testing.T) {
	importSvc, applicantSvc, historyRepo := newImportFixture(t)

	f := excelize.NewFile()
	rows := [][]string{
		{"Candidate Name", "Email", "Job Title", "Applied Date"},
		{"Jane Doe", "jane@x.com", "Engineer", "2024-05-01"},
		{"John Roe", "john@x.com", "Designer", "2024-05-02"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	result, err := importSvc.ImportXLSX(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, 2, result.Added)
	require.Equal(t, 0, result.Skipped)

	applicants, err := applicantSvc.GetApplicants()
	require.NoError(t, err)
	require.Len(t, applicants, 2)
	require.Equal(t, "XLSX Import", applicants[0].Source)

	history, err := historyRepo.GetHistoryByApplicantID(applicants[0].ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "Imported from XLSX", history[0].Change)
}
