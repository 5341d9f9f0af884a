package router

import (
	"hr_ats_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupApplicantRoutes sets up the applicant, dashboard and import routes.
func SetupApplicantRoutes(apiGroup *gin.RouterGroup, applicantHandler *handlers.ApplicantHandler, importHandler *handlers.ImportHandler) {
	applicantRoutes := apiGroup.Group("/applicants")
	{
		applicantRoutes.POST("", applicantHandler.CreateApplicant)
		applicantRoutes.GET("", applicantHandler.GetApplicants)
		applicantRoutes.GET("/:id", applicantHandler.GetApplicantByID)
		applicantRoutes.GET("/:id/history", applicantHandler.GetApplicantHistory)
		applicantRoutes.PATCH("/:id/status", applicantHandler.UpdateStatus)
		applicantRoutes.PATCH("/:id/interview-date", applicantHandler.SetInterviewDate)
		applicantRoutes.GET("/:id/offer-pdf", applicantHandler.GenerateOfferPDF)
		applicantRoutes.GET("/:id/compose-email", applicantHandler.ComposeEmail)
		applicantRoutes.DELETE("/:id", applicantHandler.DeleteApplicant)
	}

	apiGroup.GET("/dashboard", applicantHandler.GetDashboard)
	apiGroup.GET("/stages", applicantHandler.GetStages)

	apiGroup.POST("/import", importHandler.ImportApplicants)
	apiGroup.GET("/export", importHandler.ExportApplicants)
}

// SetupTemplateRoutes sets up the email-template routes.
func SetupTemplateRoutes(apiGroup *gin.RouterGroup, templateHandler *handlers.TemplateHandler) {
	templateRoutes := apiGroup.Group("/templates")
	{
		templateRoutes.POST("", templateHandler.CreateTemplate)
		templateRoutes.GET("", templateHandler.GetTemplates)
		templateRoutes.GET("/:name", templateHandler.GetTemplateByName)
		templateRoutes.PUT("/:name", templateHandler.UpdateTemplate)
		templateRoutes.DELETE("/:name", templateHandler.DeleteTemplate)
		templateRoutes.POST("/:name/preview", templateHandler.PreviewTemplate)
	}
}

// SetupSettingRoutes sets up the settings and integration routes.
func SetupSettingRoutes(apiGroup *gin.RouterGroup, settingHandler *handlers.SettingHandler) {
	settingRoutes := apiGroup.Group("/settings")
	{
		settingRoutes.GET("", settingHandler.GetSettings)
		settingRoutes.GET("/:key", settingHandler.GetSettingByKey)
		settingRoutes.PUT("/:key", settingHandler.SetSetting)
	}

	integrationRoutes := apiGroup.Group("/integrations")
	{
		integrationRoutes.GET("", settingHandler.ListIntegrations)
		integrationRoutes.PUT("/:prefix", settingHandler.ConfigureIntegration)
		integrationRoutes.POST("/:prefix/test", settingHandler.TestIntegration)
		integrationRoutes.POST("/:prefix/import", settingHandler.ImportFromIntegration)
	}
}
