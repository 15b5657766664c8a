package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/relief-grid/api-go/controllers"
)

func SetupGatewayRoutes(relay *gin.RouterGroup, gatewayController *controllers.GatewayController) {
	gateway := relay.Group("/gateway")
	{
		gateway.GET("/outbound", gatewayController.FetchOutbound)
		gateway.POST("/mark-sent", gatewayController.MarkSent)
		gateway.GET("/recent", gatewayController.ListRecent)
	}
}
