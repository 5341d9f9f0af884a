package router

import (
	"database/sql"

	"hr_ats_backend/internal/handlers"
	"hr_ats_backend/internal/repositories"
	"hr_ats_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application. The store handle is
// passed in explicitly and threaded through construction; nothing here keeps
// ambient global state.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	applicantRepo := repositories.NewApplicantRepository(db)
	historyRepo := repositories.NewHistoryRepository(db)
	templateRepo := repositories.NewTemplateRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)

	// Initialize Services
	applicantService := services.NewApplicantService(applicantRepo, historyRepo, db)
	importService := services.NewImportService(applicantRepo, historyRepo, db)
	exportService := services.NewExportService(applicantRepo)
	templateService := services.NewTemplateService(templateRepo, db)
	settingsService := services.NewSettingsService(settingsRepo, db)
	offerService := services.NewOfferService()
	emailService := services.NewEmailService(templateService)

	// Initialize Handlers
	applicantHandler := handlers.NewApplicantHandler(applicantService, offerService, emailService)
	importHandler := handlers.NewImportHandler(importService, exportService)
	templateHandler := handlers.NewTemplateHandler(templateService)
	settingHandler := handlers.NewSettingHandler(settingsService)

	apiV1 := engine.Group("/api/v1")
	{
		SetupApplicantRoutes(apiV1, applicantHandler, importHandler)
		SetupTemplateRoutes(apiV1, templateHandler)
		SetupSettingRoutes(apiV1, settingHandler)
	}
}
