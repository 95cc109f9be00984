package middleware

import (
	"net/http"
	"strings"

	userRepo "skillswap/database/repository/user"
	"skillswap/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the Firebase ID token from the Authorization header
// and sets userID (and userRole when a profile exists) in the request context.
func AuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		idToken := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := utils.AuthClient.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("userID", token.UID)

		if name, ok := token.Claims["name"].(string); ok {
			c.Set("userName", name)
		}
		if email, ok := token.Claims["email"].(string); ok {
			c.Set("userEmail", email)
		}

		// Role comes from the stored profile, not the token.
		if user, err := users.GetByUID(token.UID); err == nil && user != nil {
			c.Set("userRole", user.Role)
		}

		c.Next()
	}
}

// AdminOnly rejects requests whose authenticated profile is not an admin.
// Must run after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if role, _ := c.Get("userRole"); role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
