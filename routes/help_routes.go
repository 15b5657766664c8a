package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/relief-grid/api-go/config"
	"github.com/relief-grid/api-go/controllers"
	"github.com/relief-grid/api-go/middleware"
)

func SetupHelpRoutes(r *gin.Engine, helpController *controllers.HelpController, cfg *config.AppConfig) {
	r.GET("/messages/help", helpController.ListOpen)

	status := r.Group("/messages/help")
	status.Use(middleware.AdminAuthMiddleware(cfg.JWTSecret))
	{
		status.POST("/:id/status", helpController.UpdateStatus)
	}
}
