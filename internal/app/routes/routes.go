package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/darulhuda/ppdb-portal/internal/app/controllers"
	"github.com/darulhuda/ppdb-portal/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	sessionController *controllers.SessionController,
	documentController *controllers.DocumentController,
	settingsController *controllers.SettingsController,
	advisorController *controllers.AdvisorController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.GET("/settings", settingsController.Chrome)

	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	sessions := v1.Group("/sessions")
	{
		sessions.POST("", sessionController.Start)
		sessions.GET("/:id", sessionController.Get)
		sessions.PATCH("/:id/fields", sessionController.UpdateFields)
		sessions.POST("/:id/documents/:slot", sessionController.UploadDocument)
		sessions.POST("/:id/submit", sessionController.Submit)
		sessions.DELETE("/:id", sessionController.Cancel)
	}

	// The composed form stays public: the applicant downloads their own
	// admission document from the success screen using only the
	// registration number.
	registrations := v1.Group("/registrations")
	{
		registrations.GET("/:id/document", documentController.Preview)
		registrations.GET("/:id/document/export", documentController.Export)
	}

	advisorGroup := v1.Group("/advisor")
	{
		advisorGroup.POST("/review", advisorController.Review)
		advisorGroup.POST("/placement", advisorController.Placement)
	}

	// --- Admin routes ---
	admin := v1.Group("/admin")
	admin.Use(authMiddleware.AdminAuth())
	{
		admin.GET("/registrations", adminController.ListRegistrations)
		admin.GET("/registrations/export", adminController.ExportRegistrations)
		admin.GET("/registrations/:id", adminController.GetRegistration)
		admin.GET("/settings", adminController.GetSettings)
		admin.PUT("/settings", adminController.UpdateSettings)
		admin.POST("/settings/logos/:slot", adminController.UploadLogo)
	}
}
