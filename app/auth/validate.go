package auth

import (
	"bitwise74/job-portal/pkg/middleware"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthValidate lets the frontend check a stored token
func AuthValidate(c *gin.Context) {
	id, _ := middleware.Identity(c)

	c.JSON(http.StatusOK, gin.H{
		"user_id": id.UserID,
		"role":    id.Role,
	})
}
