package handler

import (
	"net/http"

	"github.com/fitbook/fitbook/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Shared validation failure messages. Every malformed or missing field
// responds with msgInvalidFields before any data access happens.
const (
	msgInvalidFields = "欄位未填寫正確"
	msgPasswordRule  = "密碼不符合規則，需要包含英文數字大小寫，最短8個字，最長16個字"
	msgBadID         = "ID錯誤"
)

func respondSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{
		"status": "success",
		"data":   data,
	})
}

func respondSuccessMessage(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"status":  "success",
		"message": message,
	})
}

func respondSuccessBare(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

func respondFailed(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"status":  "failed",
		"message": message,
	})
}

// respondServerError is the shared path for unexpected failures; no
// business data leaks out.
func respondServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"status":  "error",
		"message": "伺服器錯誤",
	})
}

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) uuid.UUID {
	id, _ := c.Get(middleware.ContextUserID)
	userID, _ := id.(uuid.UUID)
	return userID
}
