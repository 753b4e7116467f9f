package auth

import (
	"bitwise74/job-portal/internal"
	"bitwise74/job-portal/pkg/apierr"
	"net/http"

	"github.com/gin-gonic/gin"
)

type resendBody struct {
	Email string `json:"email"`
}

// AuthResend answers the same way whether or not a mail went out
func AuthResend(c *gin.Context, d *internal.Deps) {
	var data resendBody
	if err := c.ShouldBindJSON(&data); err != nil {
		apierr.Respond(c, apierr.FromBind(err))
		return
	}

	if err := d.Auth.ResendVerification(c.Request.Context(), data.Email); err != nil {
		apierr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "If the account exists and isn't verified yet, a new verification email is on its way",
	})
}
