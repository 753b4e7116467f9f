package auth

import (
	"bitwise74/job-portal/internal"
	"bitwise74/job-portal/pkg/apierr"
	"net/http"

	"github.com/gin-gonic/gin"
)

type verifyBody struct {
	Token string `json:"token"`
}

func AuthVerify(c *gin.Context, d *internal.Deps) {
	var data verifyBody
	if err := c.ShouldBindJSON(&data); err != nil {
		apierr.Respond(c, apierr.FromBind(err))
		return
	}

	if err := d.Auth.VerifyEmail(c.Request.Context(), data.Token); err != nil {
		apierr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Email verified successfully",
	})
}
