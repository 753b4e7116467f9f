package application

import (
	"bitwise74/job-portal/internal"
	"bitwise74/job-portal/pkg/apierr"
	"bitwise74/job-portal/pkg/middleware"
	"bitwise74/job-portal/pkg/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

func ApplicationFetch(c *gin.Context, d *internal.Deps) {
	actor, _ := middleware.Identity(c)

	id, err := util.ParamID(c, "id")
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	app, err := d.Applications.Get(c.Request.Context(), actor, id)
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}
