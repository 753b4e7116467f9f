package auth

import (
	"bitwise74/job-portal/internal"
	"bitwise74/job-portal/internal/service"
	"bitwise74/job-portal/pkg/apierr"
	"net/http"

	"github.com/gin-gonic/gin"
)

func AuthRegister(c *gin.Context, d *internal.Deps) {
	var data service.RegisterInput
	if err := c.ShouldBindJSON(&data); err != nil {
		apierr.Respond(c, apierr.FromBind(err))
		return
	}

	user, err := d.Auth.Register(c.Request.Context(), data)
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful. Please check your email to verify.",
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
	})
}
