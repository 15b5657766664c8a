package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/relief-grid/api-go/controllers"
)

func SetupUserRoutes(r *gin.Engine, userController *controllers.UserController) {
	r.POST("/users", userController.UpsertUser)
	r.GET("/users", userController.ListUsers)
	r.POST("/move-user", userController.MoveUser)
}
