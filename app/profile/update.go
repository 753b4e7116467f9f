package profile

import (
	"bitwise74/job-portal/internal"
	"bitwise74/job-portal/internal/service"
	"bitwise74/job-portal/pkg/apierr"
	"bitwise74/job-portal/pkg/middleware"
	"net/http"

	"github.com/gin-gonic/gin"
)

func ProfileUpdate(c *gin.Context, d *internal.Deps) {
	actor, _ := middleware.Identity(c)

	var data service.ProfileUpdate
	if err := c.ShouldBindJSON(&data); err != nil {
		apierr.Respond(c, apierr.FromBind(err))
		return
	}

	view, err := d.Profiles.Update(c.Request.Context(), actor, data)
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    view.User,
		"profile": view.Profile,
	})
}
