package middleware

import (
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware guards the verification endpoints with the HS256
// token issued by the operator login.
func AdminAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			c.Abort()
			return
		}

		claims := jwt.MapClaims{}
		parsedToken, err := jwt.ParseWithClaims(bearerToken[1], claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(jwtSecret), nil
		})
		if err != nil || !parsedToken.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		if sub, ok := claims["sub"].(string); ok {
			c.Set("operator", sub)
		}
		c.Next()
	}
}

// GatewayAuthMiddleware checks the shared secret carried by transport
// relays, either as the X-Gateway-Token header or as the SMSSync-style
// "secret" form field. An empty configured secret disables the check.
func GatewayAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		token := c.GetHeader("X-Gateway-Token")
		if token == "" {
			token = c.PostForm("secret")
		}
		if token != secret {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid gateway token"})
			c.Abort()
			return
		}
		c.Next()
	}
}
