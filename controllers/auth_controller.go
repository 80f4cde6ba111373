package controllers

import (
	"net/http"

	"github.com/Minhaj225/NutriGoal/config"
	"github.com/Minhaj225/NutriGoal/utils"

	"github.com/gin-gonic/gin"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login issues the admin token. Credentials are bootstrapped from the
// environment at startup; there is no self-service admin registration.
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if config.AdminPasswordHash == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "admin login not configured"})
		return
	}
	if input.Email != config.AdminEmail || !utils.CheckPasswordHash(input.Password, config.AdminPasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid email or password"})
		return
	}

	token, err := utils.GenerateAdminJWT(input.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "expiresIn": 72 * 3600})
}
