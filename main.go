package main

import (
	"net/http"
	"os"

	"urbanease-api/config"
	"urbanease-api/handlers"
	"urbanease-api/mailer"
	"urbanease-api/otpstore"
	"urbanease-api/routes"
	"urbanease-api/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadEnv()
	utils.InitLogger()

	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database
	config.InitDB()

	// Signup OTP staging and outbound mail
	handlers.OTPStore = otpstore.New()
	handlers.Mail = mailer.FromEnv()

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Uploaded listing and profile images
	r.Static("/images", config.ImagesDir())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "UrbanEase API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the UrbanEase API",
			"health":  "/health",
			"roles":   []string{"customer", "provider", "admin"},
		})
	})

	// Register all routes
	routes.SetupRoutes(r)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Server running on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal("Failed to start server: ", err)
	}
}
