package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"hr_ats_backend/internal/repositories"
)

func TestExportApplicantsXLSX(t *testing.T) {
	db := newTestDB(t)
	applicantRepo := repositories.NewApplicantRepository(db)
	historyRepo := repositories.NewHistoryRepository(db)
	applicantSvc := NewApplicantService(applicantRepo, historyRepo, db)
	exportSvc := NewExportService(applicantRepo)

	_, err := applicantSvc.CreateApplicant(CreateApplicantRequest{
		Name:        "Jane Doe",
		Email:       "jane@example.com",
		Job:         strPtr("Engineer"),
		AppliedDate: strPtr("2024-05-01"),
	})
	require.NoError(t, err)

	buf, err := exportSvc.ExportApplicantsXLSX()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Applicants")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, exportHeaders, rows[0])
	require.Equal(t, "Jane Doe", rows[1][0])
	require.Equal(t, "jane@example.com", rows[1][1])
	require.Equal(t, "Engineer", rows[1][3])

	t.Run("workbook round-trips through the importer", func(t *testing.T) {
		importSvc := NewImportService(applicantRepo, historyRepo, db)

		result, err := importSvc.ImportXLSX(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		require.Equal(t, 0, result.Added) // everything exported already exists
		require.Equal(t, 1, result.Skipped)
	})
}
