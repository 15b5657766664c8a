package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/relief-grid/api-go/config"
	"github.com/relief-grid/api-go/controllers"
	"github.com/relief-grid/api-go/middleware"
)

func SetupDisasterRoutes(r *gin.Engine, disasterController *controllers.DisasterController, cfg *config.AppConfig) {
	disasters := r.Group("/disasters")
	{
		disasters.GET("/pending", disasterController.ListPending)
		disasters.GET("/active", disasterController.ListActive)
	}

	// Verification decisions require an operator token.
	verify := r.Group("/disasters")
	verify.Use(middleware.AdminAuthMiddleware(cfg.JWTSecret))
	{
		verify.POST("/:id/verify", disasterController.Verify)
		verify.POST("/:id/deactivate", disasterController.Deactivate)
	}
}
