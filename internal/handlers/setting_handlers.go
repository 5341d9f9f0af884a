package handlers

import (
	"errors"
	"net/http"

	"hr_ats_backend/internal/services"
	"hr_ats_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SettingHandler holds the settings service, which also fronts the job-board
// integration stubs.
type SettingHandler struct {
	settingsService services.SettingsService
}

// NewSettingHandler creates a new SettingHandler.
func NewSettingHandler(ss services.SettingsService) *SettingHandler {
	return &SettingHandler{settingsService: ss}
}

// GetSettings retrieves all stored settings.
func (h *SettingHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings()
	if err != nil {
		utils.LogError(err, "GetSettings: Error from settingsService.GetSettings")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch settings.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, settings)
}

// GetSettingByKey retrieves one setting; an absent key returns the empty
// string rather than 404, matching the store's get-with-default contract.
func (h *SettingHandler) GetSettingByKey(c *gin.Context) {
	key := c.Param("key")
	value, err := h.settingsService.GetSetting(key, c.Query("default"))
	if err != nil {
		utils.LogError(err, "GetSettingByKey: Error from settingsService.GetSetting")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch setting.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": value})
}

type setSettingRequest struct {
	Value string `json:"value"`
}

// SetSetting upserts one setting by key.
func (h *SettingHandler) SetSetting(c *gin.Context) {
	var req setSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	key := c.Param("key")
	if err := h.settingsService.SetSetting(key, req.Value); err != nil {
		utils.LogError(err, "SetSetting: Error from settingsService.SetSetting")
		if errors.Is(err, services.ErrSettingValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Setting key cannot be empty.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to save setting.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": req.Value})
}

// ListIntegrations returns the fixed job-board set with configuration state.
func (h *SettingHandler) ListIntegrations(c *gin.Context) {
	integrations, err := h.settingsService.ListIntegrations()
	if err != nil {
		utils.LogError(err, "ListIntegrations: Error from settingsService.ListIntegrations")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to list integrations.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, integrations)
}

type configureIntegrationRequest struct {
	APIKey string `json:"api_key"`
}

// ConfigureIntegration stores a job board's API key.
func (h *SettingHandler) ConfigureIntegration(c *gin.Context) {
	var req configureIntegrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	if err := h.settingsService.ConfigureIntegration(c.Param("prefix"), req.APIKey); err != nil {
		h.respondIntegrationError(c, err, "configure integration")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Integration settings saved."})
}

// TestIntegration runs the stubbed connection check.
func (h *SettingHandler) TestIntegration(c *gin.Context) {
	result, err := h.settingsService.TestIntegration(c.Param("prefix"))
	if err != nil {
		h.respondIntegrationError(c, err, "test integration")
		return
	}
	c.JSON(http.StatusOK, result)
}

// ImportFromIntegration is the stub boundary for job-board imports: the
// endpoint exists, but no external API is called.
func (h *SettingHandler) ImportFromIntegration(c *gin.Context) {
	utils.RespondWithError(c, utils.NewAPIError(
		http.StatusNotImplemented,
		utils.ErrCodeNotImplemented,
		"Automatic import from job boards is not yet implemented. Use CSV import for now.",
		"configure connections under settings/integrations",
	))
}

func (h *SettingHandler) respondIntegrationError(c *gin.Context, err error, action string) {
	utils.LogError(err, "SettingHandler: failed to "+action)
	if errors.Is(err, services.ErrIntegrationNotFound) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Unknown job board.", err.Error()))
	} else if errors.Is(err, services.ErrIntegrationNotConfigured) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "No API key set for this job board.", err.Error()))
	} else {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to "+action+".", "Internal error"))
	}
}
