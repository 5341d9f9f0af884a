package handlers

import (
	"errors"
	"net/http"
	"time"

	"hr_ats_backend/internal/models"
	"hr_ats_backend/internal/services"
	"hr_ats_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ApplicantHandler holds the services the applicant endpoints compose.
type ApplicantHandler struct {
	applicantService services.ApplicantService
	offerService     services.OfferService
	emailService     services.EmailService
}

// NewApplicantHandler creates a new ApplicantHandler.
func NewApplicantHandler(as services.ApplicantService, os services.OfferService, es services.EmailService) *ApplicantHandler {
	return &ApplicantHandler{applicantService: as, offerService: os, emailService: es}
}

// CreateApplicant handles the creation of a new applicant.
func (h *ApplicantHandler) CreateApplicant(c *gin.Context) {
	var req services.CreateApplicantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateApplicant: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	applicant, err := h.applicantService.CreateApplicant(req)
	if err != nil {
		utils.LogError(err, "CreateApplicant: Error from applicantService.CreateApplicant")
		if errors.Is(err, services.ErrApplicantValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Name and Email are required.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create applicant.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, applicant)
}

// GetApplicants handles fetching all applicants, most recently applied first.
func (h *ApplicantHandler) GetApplicants(c *gin.Context) {
	applicants, err := h.applicantService.GetApplicants()
	if err != nil {
		utils.LogError(err, "GetApplicants: Error from applicantService.GetApplicants")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch applicants.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, applicants)
}

// GetApplicantByID handles fetching a single applicant by ID.
func (h *ApplicantHandler) GetApplicantByID(c *gin.Context) {
	id, ok := h.applicantID(c)
	if !ok {
		return
	}

	applicant, err := h.applicantService.GetApplicantByID(id)
	if err != nil {
		h.respondApplicantError(c, err, "fetch applicant")
		return
	}
	c.JSON(http.StatusOK, applicant)
}

// GetApplicantHistory handles fetching an applicant's audit trail.
func (h *ApplicantHandler) GetApplicantHistory(c *gin.Context) {
	id, ok := h.applicantID(c)
	if !ok {
		return
	}

	history, err := h.applicantService.GetHistory(id)
	if err != nil {
		h.respondApplicantError(c, err, "fetch history")
		return
	}
	c.JSON(http.StatusOK, history)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus handles advancing an applicant through the pipeline.
func (h *ApplicantHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.applicantID(c)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	if err := h.applicantService.UpdateStatus(id, req.Status); err != nil {
		utils.LogError(err, "UpdateStatus: Error from applicantService.UpdateStatus")
		if errors.Is(err, services.ErrUnknownStage) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Status must be one of the pipeline stages.", err.Error()))
		} else {
			h.respondApplicantError(c, err, "update status")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated."})
}

type interviewDateRequest struct {
	Date string `json:"date" binding:"required"`
}

// SetInterviewDate handles scheduling an applicant's interview.
func (h *ApplicantHandler) SetInterviewDate(c *gin.Context) {
	id, ok := h.applicantID(c)
	if !ok {
		return
	}

	var req interviewDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	if err := h.applicantService.SetInterviewDate(id, req.Date); err != nil {
		utils.LogError(err, "SetInterviewDate: Error from applicantService.SetInterviewDate")
		if errors.Is(err, services.ErrApplicantValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Interview date is required.", err.Error()))
		} else {
			h.respondApplicantError(c, err, "set interview date")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Interview date set."})
}

// DeleteApplicant handles removing an applicant and, via cascade, their
// history.
func (h *ApplicantHandler) DeleteApplicant(c *gin.Context) {
	id, ok := h.applicantID(c)
	if !ok {
		return
	}

	if err := h.applicantService.DeleteApplicant(id); err != nil {
		h.respondApplicantError(c, err, "delete applicant")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Applicant deleted."})
}

// GenerateOfferPDF streams the applicant's offer letter as a PDF download.
func (h *ApplicantHandler) GenerateOfferPDF(c *gin.Context) {
	id, ok := h.applicantID(c)
	if !ok {
		return
	}

	applicant, err := h.applicantService.GetApplicantByID(id)
	if err != nil {
		h.respondApplicantError(c, err, "fetch applicant")
		return
	}

	letter, err := h.offerService.GenerateOffer(applicant)
	if err != nil {
		utils.LogError(err, "GenerateOfferPDF: Error from offerService.GenerateOffer")
		if errors.Is(err, services.ErrOfferMissingFields) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Name and job title required.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to generate offer letter.", "Internal error"))
		}
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+letter.Filename+`"`)
	c.Data(http.StatusOK, "application/pdf", letter.Content)
}

// ComposeEmail renders a template for the applicant and returns the mailto
// URI the frontend opens in the default mail client.
func (h *ApplicantHandler) ComposeEmail(c *gin.Context) {
	id, ok := h.applicantID(c)
	if !ok {
		return
	}
	templateName := c.Query("template")
	if templateName == "" {
		utils.RespondValidationFailed(c, "template query parameter is required")
		return
	}

	applicant, err := h.applicantService.GetApplicantByID(id)
	if err != nil {
		h.respondApplicantError(c, err, "fetch applicant")
		return
	}

	composed, err := h.emailService.ComposeEmail(applicant, templateName)
	if err != nil {
		utils.LogError(err, "ComposeEmail: Error from emailService.ComposeEmail")
		if errors.Is(err, services.ErrNoEmailAddress) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Applicant has no email address.", err.Error()))
		} else if errors.Is(err, services.ErrTemplateNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Template not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to compose email.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, composed)
}

// GetDashboard handles the dashboard aggregation view.
func (h *ApplicantHandler) GetDashboard(c *gin.Context) {
	summary, err := h.applicantService.DashboardSummary(time.Now())
	if err != nil {
		utils.LogError(err, "GetDashboard: Error from applicantService.DashboardSummary")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build dashboard.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetStages returns the canonical pipeline stages so the frontend can build
// its dropdown and tag legacy statuses.
func (h *ApplicantHandler) GetStages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stages": models.Stages})
}

func (h *ApplicantHandler) applicantID(c *gin.Context) (int64, bool) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid applicant ID format.", err.Error()))
		return 0, false
	}
	return id, true
}

func (h *ApplicantHandler) respondApplicantError(c *gin.Context, err error, action string) {
	utils.LogError(err, "ApplicantHandler: failed to "+action)
	if errors.Is(err, services.ErrApplicantNotFound) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Applicant not found.", err.Error()))
		return
	}
	utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to "+action+".", "Internal error"))
}
