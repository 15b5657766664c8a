package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/relief-grid/api-go/config"
	"github.com/relief-grid/api-go/controllers"
	"github.com/relief-grid/api-go/middleware"
	"github.com/relief-grid/api-go/services"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.AppConfig) {
	// Wire services bottom-up: outbox -> fanout -> lifecycle.
	outbox := services.NewOutboxService(db)
	fanout := services.NewFanoutService(outbox)
	lifecycle := services.NewLifecycleService(db, fanout, outbox)

	smsController := controllers.NewSMSController(lifecycle)
	disasterController := controllers.NewDisasterController(db, lifecycle)
	userController := controllers.NewUserController(db, fanout)
	gatewayController := controllers.NewGatewayController(db, outbox)
	helpController := controllers.NewHelpController(db)
	authController := controllers.NewAuthController(cfg)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/admin/login", authController.Login)

	// Transport-facing endpoints share the gateway secret check.
	relay := r.Group("/")
	relay.Use(middleware.GatewayAuthMiddleware(cfg.GatewaySecret))
	{
		relay.POST("/receive-sms", smsController.ReceiveSMS)
		relay.POST("/receive-sms-smssync", smsController.ReceiveSMSForm)
		SetupGatewayRoutes(relay, gatewayController)
	}

	SetupDisasterRoutes(r, disasterController, cfg)
	SetupUserRoutes(r, userController)
	SetupHelpRoutes(r, helpController, cfg)
}
