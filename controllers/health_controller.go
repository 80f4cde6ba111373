package controllers

import (
	"os"
	"time"

	"github.com/Minhaj225/NutriGoal/config"

	"github.com/gin-gonic/gin"
)

func Root(c *gin.Context) {
	c.JSON(200, gin.H{
		"message": "Meal Recommender Backend API",
		"version": "2.0.0",
		"status":  "running",
		"endpoints": gin.H{
			"/api":          "API information",
			"/api/health":   "Health check",
			"/api/students": "Student management",
			"/api/meals":    "Meal management",
		},
	})
}

func APIInfo(c *gin.Context) {
	mlURL := os.Getenv("ML_API_URL")
	if mlURL == "" {
		mlURL = "http://localhost:5000"
	}
	c.JSON(200, gin.H{
		"name":        "Meal Recommender Backend API",
		"version":     "2.0.0",
		"description": "Backend API for ML-assisted meal recommendations",
		"endpoints": gin.H{
			"/api/health":   "GET - API health check",
			"/api/students": "Student management endpoints",
			"/api/meals":    "Meal management and recommendation endpoints",
		},
		"mlIntegration": gin.H{
			"enabled": true,
			"apiUrl":  mlURL,
		},
	})
}

func Health(c *gin.Context) {
	dbStatus := "disconnected"
	if config.DB != nil {
		if sqlDB, err := config.DB.DB(); err == nil && sqlDB.Ping() == nil {
			dbStatus = "connected"
		}
	}

	env := os.Getenv("GIN_MODE")
	if env == "" {
		env = "debug"
	}
	c.JSON(200, gin.H{
		"status":      "healthy",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": env,
		"dbStatus":    dbStatus,
	})
}

func NotFound(c *gin.Context) {
	c.JSON(404, gin.H{
		"error":              "Endpoint not found",
		"path":               c.Request.URL.Path,
		"availableEndpoints": []string{"/api", "/api/health", "/api/students", "/api/meals"},
	})
}
