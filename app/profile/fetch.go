package profile

import (
	"bitwise74/job-portal/internal"
	"bitwise74/job-portal/pkg/apierr"
	"bitwise74/job-portal/pkg/middleware"
	"net/http"

	"github.com/gin-gonic/gin"
)

func ProfileFetch(c *gin.Context, d *internal.Deps) {
	actor, _ := middleware.Identity(c)

	view, err := d.Profiles.Get(c.Request.Context(), actor)
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
