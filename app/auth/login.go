package auth

import (
	"bitwise74/job-portal/internal"
	"bitwise74/job-portal/internal/service"
	"bitwise74/job-portal/pkg/apierr"
	"net/http"

	"github.com/gin-gonic/gin"
)

func AuthLogin(c *gin.Context, d *internal.Deps) {
	var data service.LoginInput
	if err := c.ShouldBindJSON(&data); err != nil {
		apierr.Respond(c, apierr.FromBind(err))
		return
	}

	token, user, err := d.Auth.Login(c.Request.Context(), data)
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user": gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"full_name": user.FullName,
			"role":      user.Role,
		},
	})
}
