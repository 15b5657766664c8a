package controllers

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/relief-grid/api-go/config"
	"golang.org/x/crypto/bcrypt"
)

// AuthController issues operator tokens for the verification endpoints.
// Deliberately minimal: one shared operator account from the
// environment, no refresh flow.
type AuthController struct {
	Config *config.AppConfig
}

func NewAuthController(cfg *config.AppConfig) *AuthController {
	return &AuthController{Config: cfg}
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Operator login
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body LoginInput true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Router /admin/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if ac.Config.AdminPasswordHash == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Operator login is not configured"})
		return
	}

	if input.Username != ac.Config.AdminUser {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(ac.Config.AdminPasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": input.Username,
		"exp": time.Now().Add(12 * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(ac.Config.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": signed, "token_type": "bearer"})
}
