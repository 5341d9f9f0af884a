package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"hr_ats_backend/internal/services"
	"hr_ats_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ImportHandler holds the import and export services.
type ImportHandler struct {
	importService services.ImportService
	exportService services.ExportService
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(is services.ImportService, es services.ExportService) *ImportHandler {
	return &ImportHandler{importService: is, exportService: es}
}

// ImportApplicants handles a multipart file upload of applicants. The format
// is chosen by extension: .xlsx goes through the workbook importer,
// everything else is parsed as CSV.
func (h *ImportHandler) ImportApplicants(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.RespondValidationFailed(c, "a 'file' upload is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.LogError(err, "ImportApplicants: Failed to open upload")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Could not read uploaded file.", err.Error()))
		return
	}
	defer file.Close()

	var result *services.ImportResult
	if strings.EqualFold(filepath.Ext(fileHeader.Filename), ".xlsx") {
		result, err = h.importService.ImportXLSX(file)
	} else {
		result, err = h.importService.ImportCSV(file)
	}
	if err != nil {
		utils.LogError(err, "ImportApplicants: Import failed")
		if errors.Is(err, services.ErrImportFailed) || errors.Is(err, services.ErrImportEmpty) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Failed to import file; no rows were added.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to import file.", "Internal error"))
		}
		return
	}

	// The summary distinguishes imported rows from duplicates skipped.
	c.JSON(http.StatusOK, result)
}

// ExportApplicants streams all applicants as an XLSX download.
func (h *ImportHandler) ExportApplicants(c *gin.Context) {
	buf, err := h.exportService.ExportApplicantsXLSX()
	if err != nil {
		utils.LogError(err, "ExportApplicants: Export failed")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to export applicants.", "Internal error"))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="applicants.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
