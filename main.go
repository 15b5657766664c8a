package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/relief-grid/api-go/config"
	"github.com/relief-grid/api-go/middleware"
	"github.com/relief-grid/api-go/routes"
)

func main() {
	// Set up logging to stdout
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db := config.InitDB(cfg)

	// Create a new Gin router
	r := gin.Default()

	// Add logging and request-id middleware
	r.Use(gin.LoggerWithWriter(os.Stdout))
	r.Use(middleware.RequestIDMiddleware())

	// Initialize routes
	routes.SetupRoutes(r, db, cfg)

	// Start the server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed:", err)
	}
}
