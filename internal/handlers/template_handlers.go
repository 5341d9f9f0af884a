package handlers

import (
	"errors"
	"net/http"

	"hr_ats_backend/internal/models"
	"hr_ats_backend/internal/services"
	"hr_ats_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// TemplateHandler holds the template service.
type TemplateHandler struct {
	templateService services.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(ts services.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: ts}
}

// CreateTemplate handles creating a new email template.
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req services.SaveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	template, err := h.templateService.CreateTemplate(req)
	if err != nil {
		h.respondTemplateError(c, err, "create template")
		return
	}
	c.JSON(http.StatusCreated, template)
}

// GetTemplates handles listing all templates.
func (h *TemplateHandler) GetTemplates(c *gin.Context) {
	templates, err := h.templateService.GetTemplates()
	if err != nil {
		utils.LogError(err, "GetTemplates: Error from templateService.GetTemplates")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch templates.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, templates)
}

// GetTemplateByName handles fetching one template.
func (h *TemplateHandler) GetTemplateByName(c *gin.Context) {
	template, err := h.templateService.GetTemplateByName(c.Param("name"))
	if err != nil {
		h.respondTemplateError(c, err, "fetch template")
		return
	}
	c.JSON(http.StatusOK, template)
}

// UpdateTemplate handles rewriting (and possibly renaming) a template.
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	var req services.SaveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	template, err := h.templateService.UpdateTemplate(c.Param("name"), req)
	if err != nil {
		h.respondTemplateError(c, err, "update template")
		return
	}
	c.JSON(http.StatusOK, template)
}

// DeleteTemplate handles removing a template.
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	if err := h.templateService.DeleteTemplate(c.Param("name")); err != nil {
		h.respondTemplateError(c, err, "delete template")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template deleted."})
}

// PreviewTemplate renders a template against ad-hoc applicant fields without
// touching the store, for the template editor's preview pane.
func (h *TemplateHandler) PreviewTemplate(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
		Job  string `json:"job"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	applicant := &models.Applicant{Name: req.Name}
	if req.Job != "" {
		applicant.Job = &req.Job
	}

	rendered, err := h.templateService.RenderForApplicant(c.Param("name"), applicant)
	if err != nil {
		h.respondTemplateError(c, err, "render template")
		return
	}
	c.JSON(http.StatusOK, rendered)
}

func (h *TemplateHandler) respondTemplateError(c *gin.Context, err error, action string) {
	utils.LogError(err, "TemplateHandler: failed to "+action)
	if errors.Is(err, services.ErrTemplateNotFound) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Template not found.", err.Error()))
	} else if errors.Is(err, services.ErrTemplateNameExists) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Template name already in use.", err.Error()))
	} else if errors.Is(err, services.ErrTemplateValidation) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Template name is required.", err.Error()))
	} else {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to "+action+".", "Internal error"))
	}
}
