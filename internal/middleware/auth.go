package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/mamacare-api/internal/apperror"
	"github.com/harentsoaR/mamacare-api/internal/models"
	"github.com/harentsoaR/mamacare-api/internal/utils"
)

// Context keys set by AuthMiddleware.
const (
	UserIDKey   = "userID"
	UserRoleKey = "userRole"
)

// AuthMiddleware requires a valid access token in the Authorization header
// and stores the caller's ID and role in the gin context.
func AuthMiddleware(tokens *utils.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := tokens.VerifyAccess(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(apperror.Status(err), gin.H{"error": apperror.Message(err)})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserRoleKey, claims.Role)

		c.Next()
	}
}

// Caller returns the identity stored by AuthMiddleware.
func Caller(c *gin.Context) (string, models.Role) {
	return c.GetString(UserIDKey), c.MustGet(UserRoleKey).(models.Role)
}
