package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fitbook/fitbook/internal/models"
	"github.com/fitbook/fitbook/internal/repository"
	"github.com/fitbook/fitbook/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	ContextUserID   = "user_id"
	ContextUserRole = "user_role"
)

// AuthMiddleware verifies the bearer token and re-loads the user so a
// deleted account is rejected even with a valid token. The user's id and
// current role are attached to the context.
func AuthMiddleware(jwtSecret string, userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "failed",
				"message": "請先登入",
			})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "failed",
				"message": "請先登入",
			})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			message := "無效的 token"
			if errors.Is(err, utils.ErrExpiredToken) {
				message = "Token 已過期"
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "failed",
				"message": message,
			})
			c.Abort()
			return
		}

		user, err := userRepo.GetUserByID(claims.UserID)
		if err != nil || user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "failed",
				"message": "無效的 token",
			})
			c.Abort()
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserRole, user.Role)

		c.Next()
	}
}

// CoachMiddleware only lets authenticated users holding the COACH role
// continue.
func CoachMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextUserRole)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "failed",
				"message": "請先登入",
			})
			c.Abort()
			return
		}

		if role != models.RoleCoach {
			c.JSON(http.StatusForbidden, gin.H{
				"status":  "failed",
				"message": "使用者尚未成為教練",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
